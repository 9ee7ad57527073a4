package lineup

import "strings"

// Scope identifies one team-period pairing inside a fixture.
type Scope struct {
	Team   int
	Period int
}

// ChangeFunc receives the complete map after every committed mutation.
type ChangeFunc func(scope Scope, snapshot Map)

// Store owns the canonical selection map of one scope. It keeps a reverse
// player index that always agrees with the forward map. A Store is not safe
// for concurrent use; callers serialize events per board.
type Store struct {
	scope    Scope
	slots    Map
	bySlot   map[string]string
	selected string
	onChange ChangeFunc
}

func NewStore(scope Scope, seed Map, onChange ChangeFunc) *Store {
	s := &Store{scope: scope, onChange: onChange}
	s.commit(seed.Normalize())
	return s
}

func (s *Store) Scope() Scope {
	return s.scope
}

func (s *Store) Assignment(slotID string) (Assignment, bool) {
	a, ok := s.slots[slotID]
	return a, ok
}

func (s *Store) PlayerSlot(playerID string) (string, bool) {
	slotID, ok := s.bySlot[playerID]
	return slotID, ok
}

// Snapshot returns a copy of the current map.
func (s *Store) Snapshot() Map {
	return s.slots.Clone()
}

func (s *Store) Len() int {
	return len(s.slots)
}

// ReplaceAll swaps in externally loaded state. Duplicate players are resolved
// by Normalize. The change callback is not invoked since the caller already
// owns the data.
func (s *Store) ReplaceAll(next Map) {
	s.commit(next.Normalize())
	s.selected = ""
}

// Remove clears one slot. It reports whether anything changed.
func (s *Store) Remove(slotID string) bool {
	if _, ok := s.slots[slotID]; !ok {
		return false
	}
	next := s.slots.Clone()
	delete(next, slotID)
	s.commit(next)
	s.notify()
	return true
}

// Select toggles the tap-selected player. Selecting the same player twice
// clears the selection.
func (s *Store) Select(playerID string) string {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" || playerID == s.selected {
		s.selected = ""
		return ""
	}
	s.selected = playerID
	return s.selected
}

func (s *Store) Selected() string {
	return s.selected
}

// Apply resolves drop against the current map and commits the result. When the
// drop names neither a source slot nor a player, the tap-selected player is used.
func (s *Store) Apply(drop Drop) Outcome {
	if strings.TrimSpace(drop.PlayerID) == "" && strings.TrimSpace(drop.FromSlotID) == "" {
		drop.PlayerID = s.selected
	}

	next, outcome := Resolve(s.slots, drop)
	s.selected = ""
	if outcome == OutcomeNoOp {
		return outcome
	}

	s.commit(next)
	s.notify()
	return outcome
}

func (s *Store) commit(next Map) {
	index := make(map[string]string, len(next))
	for slotID, a := range next {
		index[a.PlayerID] = slotID
	}
	s.slots = next
	s.bySlot = index
}

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange(s.scope, s.slots.Clone())
	}
}
