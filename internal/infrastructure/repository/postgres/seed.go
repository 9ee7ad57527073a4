package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/touchline/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo club into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM fixtures WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count fixtures for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, f := range memory.SeedFixtures() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO fixtures (public_id, club_id, opponent, venue, kickoff_at, team_count, status)
VALUES (:public_id, :club_id, :opponent, :venue, :kickoff_at, :team_count, :status)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":  f.ID,
			"club_id":    f.ClubID,
			"opponent":   f.Opponent,
			"venue":      f.Venue,
			"kickoff_at": f.KickoffAt,
			"team_count": f.TeamCount,
			"status":     f.Status,
		})
		if err != nil {
			return fmt.Errorf("bind seed fixture %s query: %w", f.ID, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
			return fmt.Errorf("seed fixture %s: %w", f.ID, err)
		}
	}

	for _, p := range memory.SeedPlayers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO players (public_id, club_id, name, squad_number)
VALUES (:public_id, :club_id, :name, :squad_number)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":    p.ID,
			"club_id":      p.ClubID,
			"name":         p.Name,
			"squad_number": intPtrToNullInt64(p.SquadNumber),
		})
		if err != nil {
			return fmt.Errorf("bind seed player %s query: %w", p.ID, err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(sqlQuery), args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
