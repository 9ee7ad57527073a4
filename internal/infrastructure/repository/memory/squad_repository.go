package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/touchline/internal/domain/squad"
)

type SquadRepository struct {
	mu    sync.RWMutex
	items map[string]squad.Record
}

func NewSquadRepository() *SquadRepository {
	return &SquadRepository{items: make(map[string]squad.Record)}
}

func (r *SquadRepository) GetByFixture(_ context.Context, fixtureID string) (squad.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[fixtureID]
	if !ok {
		return squad.Record{}, false, nil
	}
	return cloneSquadRecord(item), true, nil
}

func (r *SquadRepository) Upsert(_ context.Context, record squad.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[record.FixtureID] = cloneSquadRecord(record)
	return nil
}

func (r *SquadRepository) UpdateMode(_ context.Context, fixtureID string, mode squad.Mode) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[fixtureID]
	if !ok {
		return false, nil
	}
	item.Mode = mode
	r.items[fixtureID] = item
	return true, nil
}

func cloneSquadRecord(item squad.Record) squad.Record {
	item.PlayerIDs = append([]string(nil), item.PlayerIDs...)
	return item
}
