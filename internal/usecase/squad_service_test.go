package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/touchline/internal/domain/squad"
	"github.com/riskibarqy/touchline/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/require"
)

func TestSquadService_ModeGate(t *testing.T) {
	tb := newTestBoard(t)
	ctx := t.Context()

	_, err := tb.squads.SetMode(ctx, memory.FixtureIDHomeOpener, "assigning_positions")
	require.True(t, errors.Is(err, ErrConflict), "expected ErrConflict, got %v", err)

	_, err = tb.squads.SetMode(ctx, memory.FixtureIDHomeOpener, "coaching")
	require.True(t, errors.Is(err, ErrInvalidInput), "expected ErrInvalidInput, got %v", err)

	added, err := tb.squads.AddPlayer(ctx, memory.FixtureIDHomeOpener, "rv-07")
	require.NoError(t, err)
	require.True(t, added)

	mode, err := tb.squads.SetMode(ctx, memory.FixtureIDHomeOpener, "assigning_positions")
	require.NoError(t, err)
	require.Equal(t, squad.ModeAssigningPositions, mode)

	_, err = tb.squads.AddPlayer(ctx, memory.FixtureIDHomeOpener, "rv-08")
	require.True(t, errors.Is(err, ErrConflict), "expected ErrConflict, got %v", err)

	record, found, err := tb.squadRepo.GetByFixture(ctx, memory.FixtureIDHomeOpener)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []string{"rv-07"}, record.PlayerIDs)
	require.Equal(t, squad.ModeAssigningPositions, record.Mode)

	updated, err := tb.squadRepo.UpdateMode(ctx, memory.FixtureIDAwayFinal, squad.ModeAssigningPositions)
	require.NoError(t, err)
	require.False(t, updated)
}

func TestSquadService_AddRemoveIsIdempotent(t *testing.T) {
	tb := newTestBoard(t)
	ctx := t.Context()

	added, err := tb.squads.AddPlayer(ctx, memory.FixtureIDHomeOpener, "rv-03")
	require.NoError(t, err)
	require.True(t, added)
	added, err = tb.squads.AddPlayer(ctx, memory.FixtureIDHomeOpener, "rv-03")
	require.NoError(t, err)
	require.False(t, added)

	_, err = tb.squads.AddPlayer(ctx, memory.FixtureIDHomeOpener, "someone-else")
	require.True(t, errors.Is(err, ErrNotFound), "expected ErrNotFound, got %v", err)

	removed, err := tb.squads.RemovePlayer(ctx, memory.FixtureIDHomeOpener, "rv-03")
	require.NoError(t, err)
	require.True(t, removed)
	removed, err = tb.squads.RemovePlayer(ctx, memory.FixtureIDHomeOpener, "rv-03")
	require.NoError(t, err)
	require.False(t, removed)
}

func TestSquadService_RemoveKeepsAssignment(t *testing.T) {
	tb := newAssigningBoard(t)
	ctx := t.Context()

	_, err := tb.selections.Drop(ctx, DropInput{ScopeRef: firstHalf(), PlayerID: "rv-01", ToSlotID: "GK"})
	require.NoError(t, err)

	_, err = tb.squads.SetMode(ctx, memory.FixtureIDHomeOpener, "picking_squad")
	require.NoError(t, err)
	removed, err := tb.squads.RemovePlayer(ctx, memory.FixtureIDHomeOpener, "rv-01")
	require.NoError(t, err)
	require.True(t, removed)

	view, err := tb.selections.Get(ctx, firstHalf())
	require.NoError(t, err)
	require.Equal(t, "rv-01", view.Selection["GK"].PlayerID)

	squadView, err := tb.squads.Get(ctx, memory.FixtureIDHomeOpener)
	require.NoError(t, err)
	require.Len(t, squadView.Players, 5)
	require.Equal(t, "rv-02", squadView.Players[0].ID)
}

func TestSquadService_AvailableAcrossScopes(t *testing.T) {
	tb := newAssigningBoard(t)
	ctx := t.Context()

	_, err := tb.selections.Drop(ctx, DropInput{ScopeRef: firstHalf(), PlayerID: "rv-01", ToSlotID: "GK"})
	require.NoError(t, err)
	second := ScopeRef{FixtureID: memory.FixtureIDHomeOpener, Team: 1, Period: 100}
	_, err = tb.selections.Drop(ctx, DropInput{ScopeRef: second, PlayerID: "rv-02", ToSlotID: "GK"})
	require.NoError(t, err)

	all, err := tb.squads.Available(ctx, memory.FixtureIDHomeOpener)
	require.NoError(t, err)
	require.Len(t, all, 6)

	both, err := tb.squads.Available(ctx, memory.FixtureIDHomeOpener, firstHalf().scope(), second.scope())
	require.NoError(t, err)
	require.Len(t, both, 4)
	require.Equal(t, "rv-03", both[0].ID)
}
