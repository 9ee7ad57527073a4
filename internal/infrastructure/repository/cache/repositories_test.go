package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/touchline/internal/domain/fixture"
	"github.com/riskibarqy/touchline/internal/domain/player"
	fixturemock "github.com/riskibarqy/touchline/internal/mocks/domain/fixture"
	playermock "github.com/riskibarqy/touchline/internal/mocks/domain/player"
	basecache "github.com/riskibarqy/touchline/internal/platform/cache"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPlayerRepository_CachesRosterAndReturnsCopies(t *testing.T) {
	ctx := context.Background()
	seven := 7
	next := playermock.NewRepository(t)
	next.On("ListByClub", mock.Anything, "club-1").
		Return([]player.Player{{ID: "p-1", ClubID: "club-1", Name: "Ada", SquadNumber: &seven}}, nil).
		Once()

	repo := NewPlayerRepository(next, basecache.NewStore(time.Minute))

	first, err := repo.ListByClub(ctx, "club-1")
	require.NoError(t, err)
	*first[0].SquadNumber = 99
	first[0].Name = "mutated"

	second, err := repo.ListByClub(ctx, "club-1")
	require.NoError(t, err)
	require.Equal(t, "Ada", second[0].Name)
	require.Equal(t, 7, *second[0].SquadNumber)
}

func TestPlayerRepository_InvalidateReloads(t *testing.T) {
	ctx := context.Background()
	next := playermock.NewRepository(t)
	next.On("ListByClub", mock.Anything, "club-1").Return([]player.Player{{ID: "p-1"}}, nil).Twice()

	repo := NewPlayerRepository(next, basecache.NewStore(time.Minute))
	_, err := repo.ListByClub(ctx, "club-1")
	require.NoError(t, err)

	repo.Invalidate(ctx, "club-1")
	_, err = repo.ListByClub(ctx, "club-1")
	require.NoError(t, err)
}

func TestFixtureRepository_CachesMissesButNotErrors(t *testing.T) {
	ctx := context.Background()
	next := fixturemock.NewRepository(t)
	next.On("GetByID", mock.Anything, "fx-missing").Return(fixture.Fixture{}, false, nil).Once()
	next.On("GetByID", mock.Anything, "fx-1").Return(fixture.Fixture{}, false, errors.New("db down")).Once()
	next.On("GetByID", mock.Anything, "fx-1").Return(fixture.Fixture{ID: "fx-1", TeamCount: 2}, true, nil).Once()

	repo := NewFixtureRepository(next, basecache.NewStore(time.Minute))

	for i := 0; i < 2; i++ {
		_, exists, err := repo.GetByID(ctx, "fx-missing")
		require.NoError(t, err)
		require.False(t, exists)
	}

	_, _, err := repo.GetByID(ctx, "fx-1")
	require.Error(t, err)

	item, exists, err := repo.GetByID(ctx, "fx-1")
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, 2, item.TeamCount)

	_, _, err = repo.GetByID(ctx, "fx-1")
	require.NoError(t, err)
}
