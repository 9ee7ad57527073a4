package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/touchline/internal/domain/fixture"
	qb "github.com/riskibarqy/touchline/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) GetByID(ctx context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(
			qb.Eq("public_id", fixtureID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build select fixture by id query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("select fixture by id: %w", err)
	}

	return fixtureFromRow(row), true, nil
}

// Upsert stores a fixture keyed by its public id.
func (r *FixtureRepository) Upsert(ctx context.Context, item fixture.Fixture) error {
	query, args, err := sqlx.Named(`
INSERT INTO fixtures (public_id, club_id, opponent, venue, kickoff_at, team_count, status)
VALUES (:public_id, :club_id, :opponent, :venue, :kickoff_at, :team_count, :status)
ON CONFLICT (public_id)
DO UPDATE SET
	club_id = EXCLUDED.club_id,
	opponent = EXCLUDED.opponent,
	venue = EXCLUDED.venue,
	kickoff_at = EXCLUDED.kickoff_at,
	team_count = EXCLUDED.team_count,
	status = EXCLUDED.status,
	updated_at = NOW(),
	deleted_at = NULL`, map[string]any{
		"public_id":  item.ID,
		"club_id":    item.ClubID,
		"opponent":   item.Opponent,
		"venue":      item.Venue,
		"kickoff_at": item.KickoffAt,
		"team_count": item.TeamCount,
		"status":     fixture.NormalizeStatus(item.Status),
	})
	if err != nil {
		return fmt.Errorf("bind upsert fixture query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("upsert fixture %s: %w", item.ID, err)
	}
	return nil
}

func fixtureFromRow(row fixtureTableModel) fixture.Fixture {
	return fixture.Fixture{
		ID:        row.PublicID,
		ClubID:    row.ClubID,
		Opponent:  row.Opponent,
		Venue:     row.Venue,
		KickoffAt: row.KickoffAt,
		TeamCount: row.TeamCount,
		Status:    fixture.NormalizeStatus(row.Status),
	}
}
