package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/touchline/internal/domain/period"
)

type periodKey struct {
	team int
	id   int
}

type PeriodRepository struct {
	mu    sync.RWMutex
	items map[string]map[periodKey]period.Record
}

func NewPeriodRepository() *PeriodRepository {
	return &PeriodRepository{items: make(map[string]map[periodKey]period.Record)}
}

func (r *PeriodRepository) ListByFixture(_ context.Context, fixtureID string) ([]period.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.items[fixtureID]
	out := make([]period.Record, 0, len(records))
	for _, record := range records {
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Team != out[j].Team {
			return out[i].Team < out[j].Team
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *PeriodRepository) Upsert(_ context.Context, fixtureID string, record period.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[fixtureID]; !ok {
		r.items[fixtureID] = make(map[periodKey]period.Record)
	}
	r.items[fixtureID][periodKey{team: record.Team, id: record.ID}] = record
	return nil
}

func (r *PeriodRepository) Delete(_ context.Context, fixtureID string, team, periodID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items[fixtureID], periodKey{team: team, id: periodID})
	return nil
}
