package fixture

import "context"

// Repository exposes fixture lookups.
type Repository interface {
	GetByID(ctx context.Context, fixtureID string) (Fixture, bool, error)
}
