package player

import "context"

// Repository describes roster lookups needed by use cases.
type Repository interface {
	ListByClub(ctx context.Context, clubID string) ([]Player, error)
}
