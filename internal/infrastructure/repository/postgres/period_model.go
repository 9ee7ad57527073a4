package postgres

import "time"

type periodTableModel struct {
	FixtureID           string    `db:"fixture_id"`
	TeamNumber          int       `db:"team_number"`
	PeriodNumber        int       `db:"period_number"`
	Label               string    `db:"label"`
	DurationSeconds     int64     `db:"duration_seconds"`
	PerformanceCategory string    `db:"performance_category"`
	UpdatedAt           time.Time `db:"updated_at"`
}

type periodInsertModel struct {
	FixtureID           string `db:"fixture_id"`
	TeamNumber          int    `db:"team_number"`
	PeriodNumber        int    `db:"period_number"`
	Label               string `db:"label"`
	DurationSeconds     int64  `db:"duration_seconds"`
	PerformanceCategory string `db:"performance_category"`
}
