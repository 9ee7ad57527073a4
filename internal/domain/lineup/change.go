package lineup

import (
	"context"
	"time"
)

// ChangeEvent carries the complete selection map of one scope after a
// committed mutation. Revision grows by one per change within a scope so
// receivers can discard stale deliveries.
type ChangeEvent struct {
	FixtureID  string
	Scope      Scope
	Revision   int64
	Selection  Map
	OccurredAt time.Time
}

// ChangePublisher forwards change events to the surrounding application.
type ChangePublisher interface {
	PublishSelectionChanged(ctx context.Context, event ChangeEvent) error
}
