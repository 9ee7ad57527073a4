package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("slot_key", "player_id").
		From("team_selections").
		Where(Eq("fixture_id", "fx-1"), Eq("team_number", 2)).
		OrderBy("period_number", "slot_key").
		Limit(16).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT slot_key, player_id FROM team_selections WHERE fixture_id = $1 AND team_number = $2 ORDER BY period_number, slot_key LIMIT 16"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "fx-1" || args[1] != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_RequiresTable(t *testing.T) {
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatalf("expected error for missing table")
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("fixture_periods").
		Columns("fixture_id", "period_number").
		Values("fx-1", 100).
		Suffix("ON CONFLICT (fixture_id, team_number, period_number) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO fixture_periods (fixture_id, period_number) VALUES ($1, $2) ON CONFLICT (fixture_id, team_number, period_number) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "fx-1" || args[1] != 100 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("fixture_periods").
		Columns("fixture_id", "period_number").
		Values("fx-1").
		ToSQL()
	if err == nil {
		t.Fatalf("expected error for short row")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("fixture_squads").
		Set("mode", "assigning_positions").
		SetExpr("updated_at", "NOW()").
		Where(Eq("fixture_id", "fx-1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE fixture_squads SET mode = $1, updated_at = NOW() WHERE fixture_id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "assigning_positions" || args[1] != "fx-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("team_selections").
		Where(Eq("fixture_id", "fx-1"), Eq("team_number", 1), Eq("period_number", 100)).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM team_selections WHERE fixture_id = $1 AND team_number = $2 AND period_number = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder_RequiresConditions(t *testing.T) {
	if _, _, err := DeleteFrom("team_selections").ToSQL(); err == nil {
		t.Fatalf("expected error for unconditional delete")
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		FixtureID string `db:"fixture_id"`
		SlotKey   string `db:"slot_key"`
		Skipped   string `db:"-"`
		internal  string
	}

	query, args, err := InsertModel("team_selections", row{FixtureID: "fx-1", SlotKey: "sub-0", Skipped: "x", internal: "y"}, "")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	wantQuery := "INSERT INTO team_selections (fixture_id, slot_key) VALUES ($1, $2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "fx-1" || args[1] != "sub-0" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
