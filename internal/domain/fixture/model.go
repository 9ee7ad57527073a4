package fixture

import (
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusFinished  = "FINISHED"
	StatusCancelled = "CANCELLED"
	StatusPostponed = "POSTPONED"
)

// Fixture is one match a club fields one or more teams in.
type Fixture struct {
	ID        string
	ClubID    string
	Opponent  string
	Venue     string
	KickoffAt time.Time
	TeamCount int
	Status    string
}

// HasTeam reports whether team is a valid team number for the fixture.
func (f Fixture) HasTeam(team int) bool {
	return team >= 1 && team <= f.TeamCount
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

// IsLocked reports whether selections for the fixture may no longer change.
func IsLocked(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFinished, StatusCancelled:
		return true
	default:
		return false
	}
}
