package squad

import "context"

// Record is the persisted squad of one fixture.
type Record struct {
	FixtureID string
	PlayerIDs []string
	Mode      Mode
}

// Repository persists fixture squads.
type Repository interface {
	GetByFixture(ctx context.Context, fixtureID string) (Record, bool, error)
	Upsert(ctx context.Context, record Record) error
	// UpdateMode changes the mode of a stored squad and reports whether one existed.
	UpdateMode(ctx context.Context, fixtureID string, mode Mode) (bool, error)
}
