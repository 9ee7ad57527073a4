package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/touchline/internal/domain/lineup"
	"github.com/riskibarqy/touchline/internal/domain/player"
	"github.com/riskibarqy/touchline/internal/domain/squad"
)

// ScopeRef addresses one team-period selection of a fixture.
type ScopeRef struct {
	FixtureID string
	Team      int
	Period    int
}

type SelectionView struct {
	Scope     lineup.Scope
	Selection lineup.Map
	Selected  string
	Category  lineup.PerformanceCategory
}

type DropInput struct {
	ScopeRef
	PlayerID   string
	FromSlotID string
	ToSlotID   string
	Position   string
}

type DropResult struct {
	Outcome   lineup.Outcome
	Selection lineup.Map
}

type SelectionService struct {
	boards *BoardService
}

func NewSelectionService(boards *BoardService) *SelectionService {
	return &SelectionService{boards: boards}
}

func (s *SelectionService) Get(ctx context.Context, ref ScopeRef) (SelectionView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.Get", scopeAttrs(ref.FixtureID, ref.scope())...)
	defer span.End()

	var view SelectionView
	err := s.boards.withBoard(ctx, ref.FixtureID, func(b *board) error {
		scope, err := resolveScope(b, ref.Team, ref.Period)
		if err != nil {
			return err
		}
		store := b.selections.Store(scope)
		view = SelectionView{
			Scope:     scope,
			Selection: store.Snapshot(),
			Selected:  store.Selected(),
			Category:  b.category(scope),
		}
		return nil
	})
	if err != nil {
		return SelectionView{}, err
	}
	return view, nil
}

// Drop applies one placement gesture. Redundant or incomplete drops are
// reported as OutcomeNoOp rather than errors.
func (s *SelectionService) Drop(ctx context.Context, input DropInput) (DropResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.Drop", scopeAttrs(input.FixtureID, input.scope())...)
	defer span.End()

	input.PlayerID = strings.TrimSpace(input.PlayerID)
	input.FromSlotID = strings.TrimSpace(input.FromSlotID)
	input.ToSlotID = strings.TrimSpace(input.ToSlotID)
	input.Position = strings.TrimSpace(input.Position)

	var result DropResult
	err := s.boards.withBoard(ctx, input.FixtureID, func(b *board) error {
		scope, err := resolveScope(b, input.Team, input.Period)
		if err != nil {
			return err
		}
		if err := ensureAssigning(b); err != nil {
			return err
		}

		store := b.selections.Store(scope)
		source, _ := store.Assignment(input.FromSlotID)
		dragging := input.FromSlotID != "" && source.PlayerID != ""

		candidate := input.PlayerID
		if candidate == "" && input.FromSlotID == "" {
			candidate = store.Selected()
		}
		// Only a drag out of an occupied slot moves a player already on the board.
		if !dragging && candidate != "" && !b.gate.Contains(candidate) {
			if _, assigned := store.PlayerSlot(candidate); !assigned {
				return fmt.Errorf("%w: player %s is not in the squad", ErrInvalidInput, candidate)
			}
		}

		outcome := store.Apply(lineup.Drop{
			PlayerID:            input.PlayerID,
			FromSlotID:          input.FromSlotID,
			ToSlotID:            input.ToSlotID,
			Position:            input.Position,
			PerformanceCategory: b.category(scope),
		})
		s.boards.recorder.RecordDrop(outcome)

		result = DropResult{Outcome: outcome, Selection: store.Snapshot()}
		return nil
	})
	if err != nil {
		return DropResult{}, err
	}

	s.boards.logger.DebugContext(ctx, "selection drop resolved",
		"fixture_id", input.FixtureID,
		"team", input.Team,
		"period", input.Period,
		"to_slot", input.ToSlotID,
		"outcome", string(result.Outcome),
	)
	return result, nil
}

// Pick toggles the tap-selected player of a scope and returns the new selection.
func (s *SelectionService) Pick(ctx context.Context, ref ScopeRef, playerID string) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.Pick", scopeAttrs(ref.FixtureID, ref.scope())...)
	defer span.End()

	var selected string
	err := s.boards.withBoard(ctx, ref.FixtureID, func(b *board) error {
		scope, err := resolveScope(b, ref.Team, ref.Period)
		if err != nil {
			return err
		}
		if err := ensureAssigning(b); err != nil {
			return err
		}
		selected = b.selections.Store(scope).Select(playerID)
		return nil
	})
	if err != nil {
		return "", err
	}
	return selected, nil
}

// RemoveSlot clears one slot and reports whether it held a player.
func (s *SelectionService) RemoveSlot(ctx context.Context, ref ScopeRef, slotID string) (bool, lineup.Map, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.RemoveSlot", scopeAttrs(ref.FixtureID, ref.scope())...)
	defer span.End()

	slotID = strings.TrimSpace(slotID)
	if slotID == "" {
		return false, nil, fmt.Errorf("%w: slot_id is required", ErrInvalidInput)
	}

	var (
		removed  bool
		snapshot lineup.Map
	)
	err := s.boards.withBoard(ctx, ref.FixtureID, func(b *board) error {
		scope, err := resolveScope(b, ref.Team, ref.Period)
		if err != nil {
			return err
		}
		if err := ensureEditable(b); err != nil {
			return err
		}
		store := b.selections.Store(scope)
		removed = store.Remove(slotID)
		snapshot = store.Snapshot()
		return nil
	})
	if err != nil {
		return false, nil, err
	}
	return removed, snapshot, nil
}

// Replace installs a whole selection map, as loaded from elsewhere, and
// persists it. No change event is published for a bulk replace.
func (s *SelectionService) Replace(ctx context.Context, ref ScopeRef, next lineup.Map) (lineup.Map, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.Replace", scopeAttrs(ref.FixtureID, ref.scope())...)
	defer span.End()

	for slotID, a := range next {
		if strings.TrimSpace(slotID) != slotID {
			return nil, fmt.Errorf("%w: slot id %q has surrounding whitespace", ErrInvalidInput, slotID)
		}
		if _, ok := lineup.AllCategories[a.PerformanceCategory]; !ok && a.PerformanceCategory != lineup.CategoryNone {
			return nil, fmt.Errorf("%w: slot %s has unknown performance category %q", ErrInvalidInput, slotID, a.PerformanceCategory)
		}
	}

	var snapshot lineup.Map
	err := s.boards.withBoard(ctx, ref.FixtureID, func(b *board) error {
		scope, err := resolveScope(b, ref.Team, ref.Period)
		if err != nil {
			return err
		}
		if err := ensureEditable(b); err != nil {
			return err
		}
		store := b.selections.Store(scope)
		store.ReplaceAll(next)
		snapshot = store.Snapshot()
		delete(b.pending, scope)
		return s.boards.persistScope(ctx, ref.FixtureID, scope, snapshot)
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// Available lists squad players, in roster order, without a slot in the scope.
func (s *SelectionService) Available(ctx context.Context, ref ScopeRef) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.Available", scopeAttrs(ref.FixtureID, ref.scope())...)
	defer span.End()

	var (
		clubID   string
		gate     *squad.Gate
		snapshot lineup.Map
	)
	err := s.boards.withBoard(ctx, ref.FixtureID, func(b *board) error {
		scope, err := resolveScope(b, ref.Team, ref.Period)
		if err != nil {
			return err
		}
		clubID = b.fixture.ClubID
		gate = squad.NewGate(b.gate.Members(), b.gate.Mode())
		snapshot = b.selections.Store(scope).Snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}

	roster, err := s.boards.roster(ctx, clubID)
	if err != nil {
		return nil, err
	}
	return gate.Available(roster, snapshot), nil
}

func (r ScopeRef) scope() lineup.Scope {
	return lineup.Scope{Team: r.Team, Period: r.Period}
}

func ensureAssigning(b *board) error {
	if err := ensureEditable(b); err != nil {
		return err
	}
	if b.gate.Mode() != squad.ModeAssigningPositions {
		return fmt.Errorf("%w: board is in %s mode", ErrConflict, b.gate.Mode())
	}
	return nil
}
