package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/touchline/internal/domain/player"
	qb "github.com/riskibarqy/touchline/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"public_id",
	"club_id",
	"name",
	"squad_number",
	"created_at",
	"updated_at",
	"deleted_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// ListByClub returns the roster ordered by squad number, unnumbered players last.
func (r *PlayerRepository) ListByClub(ctx context.Context, clubID string) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(
			qb.Eq("club_id", clubID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("squad_number NULLS LAST", "name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by club query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by club: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, item player.Player) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("validate player %s: %w", item.ID, err)
	}

	query, args, err := sqlx.Named(`
INSERT INTO players (public_id, club_id, name, squad_number)
VALUES (:public_id, :club_id, :name, :squad_number)
ON CONFLICT (public_id)
DO UPDATE SET
	club_id = EXCLUDED.club_id,
	name = EXCLUDED.name,
	squad_number = EXCLUDED.squad_number,
	updated_at = NOW(),
	deleted_at = NULL`, map[string]any{
		"public_id":    item.ID,
		"club_id":      item.ClubID,
		"name":         item.Name,
		"squad_number": intPtrToNullInt64(item.SquadNumber),
	})
	if err != nil {
		return fmt.Errorf("bind upsert player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("upsert player %s: %w", item.ID, err)
	}
	return nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:          row.PublicID,
		ClubID:      row.ClubID,
		Name:        row.Name,
		SquadNumber: nullInt64ToIntPtr(row.SquadNumber),
	}
}
