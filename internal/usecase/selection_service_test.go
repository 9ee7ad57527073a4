package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/riskibarqy/touchline/internal/domain/lineup"
	"github.com/riskibarqy/touchline/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/touchline/internal/platform/logging"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []lineup.ChangeEvent
}

func (p *recordingPublisher) PublishSelectionChanged(_ context.Context, event lineup.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Events() []lineup.ChangeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]lineup.ChangeEvent(nil), p.events...)
}

type testBoard struct {
	boards     *BoardService
	selections *SelectionService
	periods    *PeriodService
	squads     *SquadService
	selRepo    *memory.SelectionRepository
	periodRepo *memory.PeriodRepository
	squadRepo  *memory.SquadRepository
	publisher  *recordingPublisher
}

func newTestBoard(t *testing.T) *testBoard {
	t.Helper()

	tb := &testBoard{
		selRepo:    memory.NewSelectionRepository(),
		periodRepo: memory.NewPeriodRepository(),
		squadRepo:  memory.NewSquadRepository(),
		publisher:  &recordingPublisher{},
	}
	tb.boards = NewBoardService(
		memory.NewFixtureRepository(memory.SeedFixtures()),
		memory.NewPlayerRepository(memory.SeedPlayers()),
		tb.selRepo,
		tb.periodRepo,
		tb.squadRepo,
		BoardOptions{Publisher: tb.publisher, Logger: logging.NewNop()},
	)
	tb.selections = NewSelectionService(tb.boards)
	tb.periods = NewPeriodService(tb.boards)
	tb.squads = NewSquadService(tb.boards)
	return tb
}

// newAssigningBoard prepares the home opener with default periods for team 1,
// a squad of rv-01..rv-06 and the board switched to position assignment.
func newAssigningBoard(t *testing.T) *testBoard {
	t.Helper()

	tb := newTestBoard(t)
	ctx := t.Context()

	_, _, err := tb.periods.InitializeDefaults(ctx, memory.FixtureIDHomeOpener, 1)
	require.NoError(t, err)
	for _, id := range []string{"rv-01", "rv-02", "rv-03", "rv-04", "rv-05", "rv-06"} {
		_, err := tb.squads.AddPlayer(ctx, memory.FixtureIDHomeOpener, id)
		require.NoError(t, err)
	}
	_, err = tb.squads.SetMode(ctx, memory.FixtureIDHomeOpener, "assigning_positions")
	require.NoError(t, err)
	return tb
}

func firstHalf() ScopeRef {
	return ScopeRef{FixtureID: memory.FixtureIDHomeOpener, Team: 1, Period: 1}
}

func TestSelectionService_DropPlacesAndPublishes(t *testing.T) {
	tb := newAssigningBoard(t)
	ctx := t.Context()

	result, err := tb.selections.Drop(ctx, DropInput{ScopeRef: firstHalf(), PlayerID: "rv-01", ToSlotID: "GK", Position: "GK"})
	require.NoError(t, err)
	require.Equal(t, lineup.OutcomePlaced, result.Outcome)

	want := lineup.Map{"GK": {PlayerID: "rv-01", Position: "GK"}}
	require.Equal(t, want, result.Selection)

	events := tb.publisher.Events()
	require.Len(t, events, 1)
	require.Equal(t, lineup.Scope{Team: 1, Period: 1}, events[0].Scope)
	require.Equal(t, int64(1), events[0].Revision)
	require.Equal(t, want, events[0].Selection)

	stored, err := tb.selRepo.ListByFixture(ctx, memory.FixtureIDHomeOpener)
	require.NoError(t, err)
	require.Equal(t, want, stored[lineup.Scope{Team: 1, Period: 1}])
}

func TestSelectionService_SwapAndDisplace(t *testing.T) {
	tb := newAssigningBoard(t)
	ctx := t.Context()
	ref := firstHalf()

	for _, drop := range []DropInput{
		{ScopeRef: ref, PlayerID: "rv-01", ToSlotID: "GK"},
		{ScopeRef: ref, PlayerID: "rv-02", ToSlotID: "sub-0"},
	} {
		_, err := tb.selections.Drop(ctx, drop)
		require.NoError(t, err)
	}

	swapped, err := tb.selections.Drop(ctx, DropInput{ScopeRef: ref, FromSlotID: "GK", ToSlotID: "sub-0", Position: "sub-0"})
	require.NoError(t, err)
	require.Equal(t, lineup.OutcomeSwapped, swapped.Outcome)
	require.Equal(t, lineup.Map{
		"GK":    {PlayerID: "rv-02", Position: "GK"},
		"sub-0": {PlayerID: "rv-01", Position: "sub-0", IsSubstitution: true},
	}, swapped.Selection)

	displaced, err := tb.selections.Drop(ctx, DropInput{ScopeRef: ref, PlayerID: "rv-03", ToSlotID: "GK", Position: "GK"})
	require.NoError(t, err)
	require.Equal(t, lineup.OutcomeDisplaced, displaced.Outcome)
	require.Equal(t, lineup.Map{
		"GK":    {PlayerID: "rv-03", Position: "GK"},
		"sub-0": {PlayerID: "rv-01", Position: "sub-0", IsSubstitution: true},
	}, displaced.Selection)
	require.Len(t, tb.publisher.Events(), 4)
}

func TestSelectionService_NoOpDropDoesNotPublish(t *testing.T) {
	tb := newAssigningBoard(t)
	ctx := t.Context()

	_, err := tb.selections.Drop(ctx, DropInput{ScopeRef: firstHalf(), PlayerID: "rv-01", ToSlotID: "GK"})
	require.NoError(t, err)

	result, err := tb.selections.Drop(ctx, DropInput{ScopeRef: firstHalf(), PlayerID: "rv-01", ToSlotID: "GK"})
	require.NoError(t, err)
	require.Equal(t, lineup.OutcomeNoOp, result.Outcome)

	result, err = tb.selections.Drop(ctx, DropInput{ScopeRef: firstHalf(), ToSlotID: "DCL"})
	require.NoError(t, err)
	require.Equal(t, lineup.OutcomeNoOp, result.Outcome)

	require.Len(t, tb.publisher.Events(), 1)
}

func TestSelectionService_PickThenDrop(t *testing.T) {
	tb := newAssigningBoard(t)
	ctx := t.Context()

	selected, err := tb.selections.Pick(ctx, firstHalf(), "rv-04")
	require.NoError(t, err)
	require.Equal(t, "rv-04", selected)

	result, err := tb.selections.Drop(ctx, DropInput{ScopeRef: firstHalf(), ToSlotID: "ST"})
	require.NoError(t, err)
	require.Equal(t, lineup.OutcomePlaced, result.Outcome)
	require.Equal(t, "rv-04", result.Selection["ST"].PlayerID)

	view, err := tb.selections.Get(ctx, firstHalf())
	require.NoError(t, err)
	require.Empty(t, view.Selected)

	selected, err = tb.selections.Pick(ctx, firstHalf(), "rv-05")
	require.NoError(t, err)
	require.Equal(t, "rv-05", selected)
	selected, err = tb.selections.Pick(ctx, firstHalf(), "rv-05")
	require.NoError(t, err)
	require.Empty(t, selected)
}

func TestSelectionService_DropGuards(t *testing.T) {
	tb := newAssigningBoard(t)
	ctx := t.Context()

	_, err := tb.selections.Drop(ctx, DropInput{ScopeRef: firstHalf(), PlayerID: "rv-14", ToSlotID: "GK"})
	require.True(t, errors.Is(err, ErrInvalidInput), "expected ErrInvalidInput, got %v", err)

	// An empty source slot makes the drop a direct assignment, so the squad still applies.
	_, err = tb.selections.Drop(ctx, DropInput{ScopeRef: firstHalf(), PlayerID: "rv-14", FromSlotID: "nowhere", ToSlotID: "GK"})
	require.True(t, errors.Is(err, ErrInvalidInput), "expected ErrInvalidInput, got %v", err)
	view, err := tb.selections.Get(ctx, firstHalf())
	require.NoError(t, err)
	require.Empty(t, view.Selection)

	_, err = tb.selections.Drop(ctx, DropInput{ScopeRef: ScopeRef{FixtureID: memory.FixtureIDHomeOpener, Team: 3, Period: 1}, PlayerID: "rv-01", ToSlotID: "GK"})
	require.True(t, errors.Is(err, ErrInvalidInput), "expected ErrInvalidInput, got %v", err)

	_, err = tb.selections.Drop(ctx, DropInput{ScopeRef: ScopeRef{FixtureID: memory.FixtureIDHomeOpener, Team: 1, Period: 7}, PlayerID: "rv-01", ToSlotID: "GK"})
	require.True(t, errors.Is(err, ErrNotFound), "expected ErrNotFound, got %v", err)

	_, err = tb.selections.Drop(ctx, DropInput{ScopeRef: ScopeRef{FixtureID: "missing", Team: 1, Period: 1}, PlayerID: "rv-01", ToSlotID: "GK"})
	require.True(t, errors.Is(err, ErrNotFound), "expected ErrNotFound, got %v", err)

	_, err = tb.squads.SetMode(ctx, memory.FixtureIDHomeOpener, "picking_squad")
	require.NoError(t, err)
	_, err = tb.selections.Drop(ctx, DropInput{ScopeRef: firstHalf(), PlayerID: "rv-01", ToSlotID: "GK"})
	require.True(t, errors.Is(err, ErrConflict), "expected ErrConflict, got %v", err)
}

func TestSelectionService_ScopesAreIndependent(t *testing.T) {
	tb := newAssigningBoard(t)
	ctx := t.Context()

	_, err := tb.selections.Drop(ctx, DropInput{ScopeRef: firstHalf(), PlayerID: "rv-01", ToSlotID: "GK"})
	require.NoError(t, err)

	second := ScopeRef{FixtureID: memory.FixtureIDHomeOpener, Team: 1, Period: 100}
	result, err := tb.selections.Drop(ctx, DropInput{ScopeRef: second, PlayerID: "rv-01", ToSlotID: "ST"})
	require.NoError(t, err)
	require.Equal(t, lineup.OutcomePlaced, result.Outcome)

	first, err := tb.selections.Get(ctx, firstHalf())
	require.NoError(t, err)
	require.Equal(t, "rv-01", first.Selection["GK"].PlayerID)
	require.NotContains(t, first.Selection, "ST")
}

func TestSelectionService_RemoveSlotAndReplace(t *testing.T) {
	tb := newAssigningBoard(t)
	ctx := t.Context()

	replaced, err := tb.selections.Replace(ctx, firstHalf(), lineup.Map{
		"GK":    {PlayerID: "rv-01", Position: "GK"},
		"DCL":   {PlayerID: "rv-01", Position: "DCL"},
		"sub-1": {PlayerID: "rv-02", Position: "sub-1", IsSubstitution: true},
	})
	require.NoError(t, err)
	require.Len(t, replaced, 2)
	require.Empty(t, tb.publisher.Events())

	removed, snapshot, err := tb.selections.RemoveSlot(ctx, firstHalf(), "sub-1")
	require.NoError(t, err)
	require.True(t, removed)
	require.NotContains(t, snapshot, "sub-1")
	require.Len(t, tb.publisher.Events(), 1)

	removed, _, err = tb.selections.RemoveSlot(ctx, firstHalf(), "sub-1")
	require.NoError(t, err)
	require.False(t, removed)
	require.Len(t, tb.publisher.Events(), 1)

	_, err = tb.selections.Replace(ctx, firstHalf(), lineup.Map{"GK": {PlayerID: "rv-01", PerformanceCategory: "legendary"}})
	require.True(t, errors.Is(err, ErrInvalidInput), "expected ErrInvalidInput, got %v", err)

	_, err = tb.selections.Replace(ctx, firstHalf(), lineup.Map{
		"GK":  {PlayerID: "rv-01", Position: "GK"},
		" GK": {PlayerID: "rv-03", Position: "GK"},
	})
	require.True(t, errors.Is(err, ErrInvalidInput), "expected ErrInvalidInput, got %v", err)
	view, err := tb.selections.Get(ctx, firstHalf())
	require.NoError(t, err)
	require.Equal(t, "rv-01", view.Selection["GK"].PlayerID)
}

func TestSelectionService_AvailableFollowsRosterOrder(t *testing.T) {
	tb := newAssigningBoard(t)
	ctx := t.Context()

	_, err := tb.selections.Drop(ctx, DropInput{ScopeRef: firstHalf(), PlayerID: "rv-02", ToSlotID: "GK"})
	require.NoError(t, err)

	available, err := tb.selections.Available(ctx, firstHalf())
	require.NoError(t, err)

	ids := make([]string, 0, len(available))
	for _, p := range available {
		ids = append(ids, p.ID)
	}
	require.Equal(t, []string{"rv-01", "rv-03", "rv-04", "rv-05", "rv-06"}, ids)
}

func TestSelectionService_DropInheritsPeriodCategory(t *testing.T) {
	tb := newAssigningBoard(t)
	ctx := t.Context()

	category := "advanced"
	_, err := tb.periods.Edit(ctx, EditPeriodInput{FixtureID: memory.FixtureIDHomeOpener, Team: 1, Period: 1, Category: &category})
	require.NoError(t, err)

	result, err := tb.selections.Drop(ctx, DropInput{ScopeRef: firstHalf(), PlayerID: "rv-01", ToSlotID: "GK"})
	require.NoError(t, err)
	require.Equal(t, lineup.CategoryAdvanced, result.Selection["GK"].PerformanceCategory)
}
