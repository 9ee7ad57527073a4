package postgres

type selectionTableModel struct {
	FixtureID           string `db:"fixture_id"`
	TeamNumber          int    `db:"team_number"`
	PeriodNumber        int    `db:"period_number"`
	SlotKey             string `db:"slot_key"`
	PlayerID            string `db:"player_id"`
	Position            string `db:"position"`
	IsSubstitution      bool   `db:"is_substitution"`
	PerformanceCategory string `db:"performance_category"`
}
