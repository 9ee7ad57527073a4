package postgres

import (
	"time"

	"github.com/lib/pq"
)

type squadTableModel struct {
	FixtureID string         `db:"fixture_id"`
	PlayerIDs pq.StringArray `db:"player_ids"`
	Mode      string         `db:"mode"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type squadInsertModel struct {
	FixtureID string         `db:"fixture_id"`
	PlayerIDs pq.StringArray `db:"player_ids"`
	Mode      string         `db:"mode"`
}
