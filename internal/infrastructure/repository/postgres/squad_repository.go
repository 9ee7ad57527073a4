package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/touchline/internal/domain/squad"
	qb "github.com/riskibarqy/touchline/internal/platform/querybuilder"
)

type SquadRepository struct {
	db *sqlx.DB
}

func NewSquadRepository(db *sqlx.DB) *SquadRepository {
	return &SquadRepository{db: db}
}

func (r *SquadRepository) GetByFixture(ctx context.Context, fixtureID string) (squad.Record, bool, error) {
	query, args, err := qb.Select("fixture_id", "player_ids", "mode", "updated_at").
		From("fixture_squads").
		Where(qb.Eq("fixture_id", fixtureID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return squad.Record{}, false, fmt.Errorf("build select squad query: %w", err)
	}

	var row squadTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return squad.Record{}, false, nil
		}
		return squad.Record{}, false, fmt.Errorf("select squad: %w", err)
	}

	mode, err := squad.ParseMode(row.Mode)
	if err != nil {
		mode = squad.ModePickingSquad
	}
	return squad.Record{
		FixtureID: row.FixtureID,
		PlayerIDs: append([]string(nil), row.PlayerIDs...),
		Mode:      mode,
	}, true, nil
}

func (r *SquadRepository) Upsert(ctx context.Context, record squad.Record) error {
	query, args, err := squadUpsertQuery(record)
	if err != nil {
		return fmt.Errorf("build upsert squad query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert squad %s: %w", record.FixtureID, err)
	}
	return nil
}

func (r *SquadRepository) UpdateMode(ctx context.Context, fixtureID string, mode squad.Mode) (bool, error) {
	query, args, err := squadModeUpdateQuery(fixtureID, mode)
	if err != nil {
		return false, fmt.Errorf("build update squad mode query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update squad mode %s: %w", fixtureID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update squad mode %s rows affected: %w", fixtureID, err)
	}
	return affected > 0, nil
}

func squadUpsertQuery(record squad.Record) (string, []any, error) {
	return qb.InsertModel("fixture_squads", squadInsertModel{
		FixtureID: record.FixtureID,
		PlayerIDs: pq.StringArray(append([]string{}, record.PlayerIDs...)),
		Mode:      string(record.Mode),
	}, `ON CONFLICT (fixture_id) DO UPDATE SET
	player_ids = EXCLUDED.player_ids,
	mode = EXCLUDED.mode,
	updated_at = NOW()`)
}

func squadModeUpdateQuery(fixtureID string, mode squad.Mode) (string, []any, error) {
	return qb.Update("fixture_squads").
		Set("mode", string(mode)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("fixture_id", fixtureID)).
		ToSQL()
}
