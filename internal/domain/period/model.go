package period

import (
	"errors"
	"fmt"
	"time"
)

const (
	FirstHalfBaseID  = 1
	SecondHalfBaseID = 100

	DefaultDuration = 45 * time.Minute
)

var (
	ErrPeriodNotFound  = errors.New("period not found")
	ErrInvalidDuration = errors.New("period duration must be greater than zero")
	ErrInvalidHalf     = errors.New("half must be 1 or 2")
)

// Period is one time-bounded segment of a fixture for one team.
type Period struct {
	Team     int
	ID       int
	Label    string
	Duration time.Duration
}

// Update carries partial edits; nil fields are left unchanged.
type Update struct {
	Label    *string
	Duration *time.Duration
}

// Half returns the coarse half group of a period id.
func Half(id int) int {
	if id >= SecondHalfBaseID {
		return 2
	}
	return 1
}

// BaseID returns the first id of a half group.
func BaseID(half int) (int, error) {
	switch half {
	case 1:
		return FirstHalfBaseID, nil
	case 2:
		return SecondHalfBaseID, nil
	default:
		return 0, fmt.Errorf("%w: got %d", ErrInvalidHalf, half)
	}
}

// MetaKey keys per-period metadata tracked outside the plan.
func MetaKey(periodID, team int) string {
	return fmt.Sprintf("%d-%d", periodID, team)
}
