package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/touchline/internal/domain/lineup"
)

// SelectionRepository keeps one selection map per fixture scope. Empty maps
// are stored as absent, matching one row per occupied slot.
type SelectionRepository struct {
	mu    sync.RWMutex
	items map[string]map[lineup.Scope]lineup.Map
}

func NewSelectionRepository() *SelectionRepository {
	return &SelectionRepository{items: make(map[string]map[lineup.Scope]lineup.Map)}
}

func (r *SelectionRepository) ListByFixture(_ context.Context, fixtureID string) (map[lineup.Scope]lineup.Map, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scopes := r.items[fixtureID]
	out := make(map[lineup.Scope]lineup.Map, len(scopes))
	for scope, snapshot := range scopes {
		out[scope] = snapshot.Clone()
	}
	return out, nil
}

func (r *SelectionRepository) ReplaceScope(_ context.Context, fixtureID string, scope lineup.Scope, snapshot lineup.Map) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(snapshot) == 0 {
		r.deleteLocked(fixtureID, scope)
		return nil
	}
	if _, ok := r.items[fixtureID]; !ok {
		r.items[fixtureID] = make(map[lineup.Scope]lineup.Map)
	}
	r.items[fixtureID][scope] = snapshot.Clone()
	return nil
}

func (r *SelectionRepository) DeleteScope(_ context.Context, fixtureID string, scope lineup.Scope) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.deleteLocked(fixtureID, scope)
	return nil
}

func (r *SelectionRepository) deleteLocked(fixtureID string, scope lineup.Scope) {
	scopes, ok := r.items[fixtureID]
	if !ok {
		return
	}
	delete(scopes, scope)
	if len(scopes) == 0 {
		delete(r.items, fixtureID)
	}
}
