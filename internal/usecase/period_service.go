package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/touchline/internal/domain/lineup"
	"github.com/riskibarqy/touchline/internal/domain/period"
)

type AddPeriodInput struct {
	FixtureID       string
	Team            int
	Label           string
	DurationMinutes int
	Half            int
}

type EditPeriodInput struct {
	FixtureID       string
	Team            int
	Period          int
	Label           *string
	DurationMinutes *int
	Category        *string
}

type PeriodService struct {
	boards *BoardService
}

func NewPeriodService(boards *BoardService) *PeriodService {
	return &PeriodService{boards: boards}
}

func (s *PeriodService) List(ctx context.Context, fixtureID string, team int) ([]PeriodView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PeriodService.List", fixtureAttr(fixtureID))
	defer span.End()

	var out []PeriodView
	err := s.boards.withBoard(ctx, fixtureID, func(b *board) error {
		if err := ensureTeam(b, team); err != nil {
			return err
		}
		out = periodViews(b, team)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Add appends a period with an empty selection. The new period starts with a
// copy of the performance category of the period right before it.
func (s *PeriodService) Add(ctx context.Context, input AddPeriodInput) (PeriodView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PeriodService.Add", fixtureAttr(input.FixtureID))
	defer span.End()

	if input.DurationMinutes <= 0 {
		return PeriodView{}, fmt.Errorf("%w: duration_minutes must be > 0", ErrInvalidInput)
	}

	var view PeriodView
	err := s.boards.withBoard(ctx, input.FixtureID, func(b *board) error {
		if err := ensureTeam(b, input.Team); err != nil {
			return err
		}
		if err := ensureEditable(b); err != nil {
			return err
		}

		plan := b.plan(input.Team)
		item, err := plan.Add(input.Label, time.Duration(input.DurationMinutes)*time.Minute, input.Half)
		if err != nil {
			return mapPeriodError(err)
		}

		category := lineup.CategoryNone
		if previous, ok := plan.Previous(item.ID); ok {
			category = b.categories[period.MetaKey(previous.ID, input.Team)]
		}

		if err := s.boards.persistPeriod(ctx, input.FixtureID, period.Record{Period: item, Category: string(category)}); err != nil {
			_ = plan.Delete(item.ID)
			return fmt.Errorf("%w: %w", ErrDependencyUnavailable, err)
		}

		if category != lineup.CategoryNone {
			b.categories[period.MetaKey(item.ID, input.Team)] = category
		}
		b.selections.Store(lineup.Scope{Team: input.Team, Period: item.ID})
		view = PeriodView{Period: item, Category: category}
		return nil
	})
	if err != nil {
		return PeriodView{}, err
	}
	return view, nil
}

// Edit merges label, duration and category changes without touching the selection.
func (s *PeriodService) Edit(ctx context.Context, input EditPeriodInput) (PeriodView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PeriodService.Edit", fixtureAttr(input.FixtureID))
	defer span.End()

	update := period.Update{Label: input.Label}
	if input.DurationMinutes != nil {
		if *input.DurationMinutes <= 0 {
			return PeriodView{}, fmt.Errorf("%w: duration_minutes must be > 0", ErrInvalidInput)
		}
		duration := time.Duration(*input.DurationMinutes) * time.Minute
		update.Duration = &duration
	}

	var category *lineup.PerformanceCategory
	if input.Category != nil {
		parsed, ok := lineup.ParseCategory(*input.Category)
		if !ok {
			return PeriodView{}, fmt.Errorf("%w: unknown performance category %q", ErrInvalidInput, *input.Category)
		}
		category = &parsed
	}

	var view PeriodView
	err := s.boards.withBoard(ctx, input.FixtureID, func(b *board) error {
		if err := ensureTeam(b, input.Team); err != nil {
			return err
		}
		if err := ensureEditable(b); err != nil {
			return err
		}

		item, err := b.plan(input.Team).Edit(input.Period, update)
		if err != nil {
			return mapPeriodError(err)
		}

		key := period.MetaKey(item.ID, input.Team)
		if category != nil {
			if *category == lineup.CategoryNone {
				delete(b.categories, key)
			} else {
				b.categories[key] = *category
			}
		}

		view = PeriodView{Period: item, Category: b.categories[key]}
		if err := s.boards.persistPeriod(ctx, input.FixtureID, period.Record{Period: item, Category: string(view.Category)}); err != nil {
			return fmt.Errorf("%w: %w", ErrDependencyUnavailable, err)
		}
		return nil
	})
	if err != nil {
		return PeriodView{}, err
	}
	return view, nil
}

// Delete removes a period, its selection and its category metadata.
func (s *PeriodService) Delete(ctx context.Context, fixtureID string, team, periodID int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PeriodService.Delete", fixtureAttr(fixtureID))
	defer span.End()

	return s.boards.withBoard(ctx, fixtureID, func(b *board) error {
		if err := ensureTeam(b, team); err != nil {
			return err
		}
		if err := ensureEditable(b); err != nil {
			return err
		}
		plan := b.plan(team)
		if _, ok := plan.Get(periodID); !ok {
			return mapPeriodError(fmt.Errorf("%w: team=%d period=%d", period.ErrPeriodNotFound, team, periodID))
		}

		// Storage goes first so a failed write leaves the board as it was.
		// Selection rows go before the period row; a leftover period row is
		// rewritten with its selection by the next Save.
		scope := lineup.Scope{Team: team, Period: periodID}
		if err := s.boards.selectionRepo.DeleteScope(ctx, fixtureID, scope); err != nil {
			return fmt.Errorf("%w: delete selection: %w", ErrDependencyUnavailable, err)
		}
		if err := s.boards.periodRepo.Delete(ctx, fixtureID, team, periodID); err != nil {
			return fmt.Errorf("%w: delete period: %w", ErrDependencyUnavailable, err)
		}

		if err := plan.Delete(periodID); err != nil {
			return mapPeriodError(err)
		}
		b.selections.Drop(scope)
		delete(b.pending, scope)
		delete(b.revisions, scope)
		delete(b.categories, period.MetaKey(periodID, team))

		s.boards.logger.InfoContext(ctx, "period deleted", "fixture_id", fixtureID, "team", team, "period", periodID)
		return nil
	})
}

// InitializeDefaults seeds First Half and Second Half for a team without
// periods. It reports whether periods were created.
func (s *PeriodService) InitializeDefaults(ctx context.Context, fixtureID string, team int) (bool, []PeriodView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PeriodService.InitializeDefaults", fixtureAttr(fixtureID))
	defer span.End()

	var (
		created bool
		out     []PeriodView
	)
	err := s.boards.withBoard(ctx, fixtureID, func(b *board) error {
		if err := ensureTeam(b, team); err != nil {
			return err
		}

		if err := ensureEditable(b); err != nil {
			return err
		}

		plan := b.plan(team)
		created = plan.InitializeDefaults()
		if created {
			items := plan.Periods()
			for _, item := range items {
				if err := s.boards.persistPeriod(ctx, fixtureID, period.Record{Period: item}); err != nil {
					for _, seeded := range items {
						_ = plan.Delete(seeded.ID)
					}
					created = false
					return fmt.Errorf("%w: %w", ErrDependencyUnavailable, err)
				}
			}
			for _, item := range items {
				b.selections.Store(lineup.Scope{Team: team, Period: item.ID})
			}
		}
		out = periodViews(b, team)
		return nil
	})
	if err != nil {
		return false, nil, err
	}
	return created, out, nil
}

func ensureTeam(b *board, team int) error {
	if !b.fixture.HasTeam(team) {
		return fmt.Errorf("%w: team %d is not part of fixture %s", ErrInvalidInput, team, b.fixture.ID)
	}
	return nil
}

func mapPeriodError(err error) error {
	switch {
	case errors.Is(err, period.ErrPeriodNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, period.ErrInvalidDuration), errors.Is(err, period.ErrInvalidHalf):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}
