package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/touchline/internal/domain/lineup"
	qb "github.com/riskibarqy/touchline/internal/platform/querybuilder"
)

const selectionTable = "team_selections"

// SelectionRepository stores one team_selections row per occupied slot.
type SelectionRepository struct {
	db *sqlx.DB
}

func NewSelectionRepository(db *sqlx.DB) *SelectionRepository {
	return &SelectionRepository{db: db}
}

func (r *SelectionRepository) ListByFixture(ctx context.Context, fixtureID string) (map[lineup.Scope]lineup.Map, error) {
	query, args, err := qb.Select(
		"fixture_id",
		"team_number",
		"period_number",
		"slot_key",
		"player_id",
		"position",
		"is_substitution",
		"performance_category",
	).From(selectionTable).
		Where(qb.Eq("fixture_id", fixtureID)).
		OrderBy("team_number", "period_number", "slot_key").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select selections query: %w", err)
	}

	var rows []selectionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select selections by fixture: %w", err)
	}
	return selectionsFromRows(rows), nil
}

// ReplaceScope rewrites every row of one team-period scope inside a transaction.
func (r *SelectionRepository) ReplaceScope(ctx context.Context, fixtureID string, scope lineup.Scope, snapshot lineup.Map) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace selection tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := deleteScope(ctx, tx, fixtureID, scope); err != nil {
		return err
	}

	for _, row := range selectionToRows(fixtureID, scope, snapshot) {
		query, args, err := qb.InsertModel(selectionTable, row, "")
		if err != nil {
			return fmt.Errorf("build insert selection query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert selection slot=%s player=%s: %w", row.SlotKey, row.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace selection tx: %w", err)
	}
	return nil
}

func (r *SelectionRepository) DeleteScope(ctx context.Context, fixtureID string, scope lineup.Scope) error {
	return deleteScope(ctx, r.db, fixtureID, scope)
}

func deleteScope(ctx context.Context, exec sqlx.ExecerContext, fixtureID string, scope lineup.Scope) error {
	query, args, err := qb.DeleteFrom(selectionTable).
		Where(
			qb.Eq("fixture_id", fixtureID),
			qb.Eq("team_number", scope.Team),
			qb.Eq("period_number", scope.Period),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete selection query: %w", err)
	}

	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete selection scope team=%d period=%d: %w", scope.Team, scope.Period, err)
	}
	return nil
}

// selectionToRows emits rows in slot order so inserts are deterministic.
func selectionToRows(fixtureID string, scope lineup.Scope, snapshot lineup.Map) []selectionTableModel {
	rows := make([]selectionTableModel, 0, len(snapshot))
	for _, slotID := range snapshot.SlotIDs() {
		a := snapshot[slotID]
		if a.PlayerID == "" {
			continue
		}
		rows = append(rows, selectionTableModel{
			FixtureID:           fixtureID,
			TeamNumber:          scope.Team,
			PeriodNumber:        scope.Period,
			SlotKey:             slotID,
			PlayerID:            a.PlayerID,
			Position:            a.Position,
			IsSubstitution:      a.IsSubstitution,
			PerformanceCategory: string(a.PerformanceCategory),
		})
	}
	return rows
}

func selectionsFromRows(rows []selectionTableModel) map[lineup.Scope]lineup.Map {
	out := make(map[lineup.Scope]lineup.Map)
	for _, row := range rows {
		scope := lineup.Scope{Team: row.TeamNumber, Period: row.PeriodNumber}
		m, ok := out[scope]
		if !ok {
			m = lineup.Map{}
			out[scope] = m
		}
		m[row.SlotKey] = lineup.Assignment{
			PlayerID:            row.PlayerID,
			Position:            row.Position,
			IsSubstitution:      row.IsSubstitution,
			PerformanceCategory: lineup.PerformanceCategory(row.PerformanceCategory),
		}
	}
	return out
}
