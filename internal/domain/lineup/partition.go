package lineup

import "sort"

// Partition holds one Store per scope.
type Partition struct {
	stores   map[Scope]*Store
	onChange ChangeFunc
}

func NewPartition(onChange ChangeFunc) *Partition {
	return &Partition{
		stores:   make(map[Scope]*Store),
		onChange: onChange,
	}
}

// Store returns the store for scope, creating an empty one when missing.
func (p *Partition) Store(scope Scope) *Store {
	if s, ok := p.stores[scope]; ok {
		return s
	}
	s := NewStore(scope, nil, p.onChange)
	p.stores[scope] = s
	return s
}

// Lookup returns the store for scope without creating it.
func (p *Partition) Lookup(scope Scope) (*Store, bool) {
	s, ok := p.stores[scope]
	return s, ok
}

// Seed installs persisted state for scope.
func (p *Partition) Seed(scope Scope, seed Map) *Store {
	s := p.Store(scope)
	s.ReplaceAll(seed)
	return s
}

func (p *Partition) Drop(scope Scope) {
	delete(p.stores, scope)
}

// Scopes lists known scopes ordered by team then period.
func (p *Partition) Scopes() []Scope {
	out := make([]Scope, 0, len(p.stores))
	for scope := range p.stores {
		out = append(out, scope)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Team != out[j].Team {
			return out[i].Team < out[j].Team
		}
		return out[i].Period < out[j].Period
	})
	return out
}
