package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/touchline/internal/domain/fixture"
)

type FixtureRepository struct {
	mu    sync.RWMutex
	items map[string]fixture.Fixture
}

func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	items := make(map[string]fixture.Fixture, len(fixtures))
	for _, item := range fixtures {
		items[item.ID] = item
	}

	return &FixtureRepository{items: items}
}

func (r *FixtureRepository) GetByID(_ context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[fixtureID]
	return item, ok, nil
}

func (r *FixtureRepository) Put(item fixture.Fixture) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
}
