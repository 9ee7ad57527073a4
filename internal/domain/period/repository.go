package period

import "context"

// Record is a persisted period together with its performance category.
type Record struct {
	Period
	Category string
}

// Repository persists fixture periods.
type Repository interface {
	ListByFixture(ctx context.Context, fixtureID string) ([]Record, error)
	Upsert(ctx context.Context, fixtureID string, record Record) error
	Delete(ctx context.Context, fixtureID string, team, periodID int) error
}
