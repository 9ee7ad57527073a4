package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/touchline/internal/domain/period"
	qb "github.com/riskibarqy/touchline/internal/platform/querybuilder"
)

type PeriodRepository struct {
	db *sqlx.DB
}

func NewPeriodRepository(db *sqlx.DB) *PeriodRepository {
	return &PeriodRepository{db: db}
}

func (r *PeriodRepository) ListByFixture(ctx context.Context, fixtureID string) ([]period.Record, error) {
	query, args, err := qb.Select("fixture_id", "team_number", "period_number", "label", "duration_seconds", "performance_category", "updated_at").
		From("fixture_periods").
		Where(qb.Eq("fixture_id", fixtureID)).
		OrderBy("team_number", "period_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select periods query: %w", err)
	}

	var rows []periodTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select periods by fixture: %w", err)
	}

	out := make([]period.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, periodFromRow(row))
	}
	return out, nil
}

func (r *PeriodRepository) Upsert(ctx context.Context, fixtureID string, record period.Record) error {
	query, args, err := periodUpsertQuery(fixtureID, record)
	if err != nil {
		return fmt.Errorf("build upsert period query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert period fixture=%s team=%d period=%d: %w", fixtureID, record.Team, record.ID, err)
	}
	return nil
}

func (r *PeriodRepository) Delete(ctx context.Context, fixtureID string, team, periodID int) error {
	query, args, err := qb.DeleteFrom("fixture_periods").
		Where(
			qb.Eq("fixture_id", fixtureID),
			qb.Eq("team_number", team),
			qb.Eq("period_number", periodID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete period query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete period fixture=%s team=%d period=%d: %w", fixtureID, team, periodID, err)
	}
	return nil
}

func periodUpsertQuery(fixtureID string, record period.Record) (string, []any, error) {
	return qb.InsertModel("fixture_periods", periodToRow(fixtureID, record), `ON CONFLICT (fixture_id, team_number, period_number) DO UPDATE SET
	label = EXCLUDED.label,
	duration_seconds = EXCLUDED.duration_seconds,
	performance_category = EXCLUDED.performance_category,
	updated_at = NOW()`)
}

func periodToRow(fixtureID string, record period.Record) periodInsertModel {
	return periodInsertModel{
		FixtureID:           fixtureID,
		TeamNumber:          record.Team,
		PeriodNumber:        record.ID,
		Label:               record.Label,
		DurationSeconds:     int64(record.Duration / time.Second),
		PerformanceCategory: record.Category,
	}
}

func periodFromRow(row periodTableModel) period.Record {
	return period.Record{
		Period: period.Period{
			Team:     row.TeamNumber,
			ID:       row.PeriodNumber,
			Label:    row.Label,
			Duration: time.Duration(row.DurationSeconds) * time.Second,
		},
		Category: row.PerformanceCategory,
	}
}
