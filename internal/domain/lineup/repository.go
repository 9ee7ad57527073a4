package lineup

import "context"

// Repository persists selection maps as one row per occupied slot.
type Repository interface {
	ListByFixture(ctx context.Context, fixtureID string) (map[Scope]Map, error)
	ReplaceScope(ctx context.Context, fixtureID string, scope Scope, snapshot Map) error
	DeleteScope(ctx context.Context, fixtureID string, scope Scope) error
}
