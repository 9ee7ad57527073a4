package cache

import (
	"context"

	"github.com/riskibarqy/touchline/internal/domain/fixture"
	"github.com/riskibarqy/touchline/internal/domain/player"
	basecache "github.com/riskibarqy/touchline/internal/platform/cache"
)

const (
	fixtureKeyPrefix = "fixture:id:"
	rosterKeyPrefix  = "player:club:"
)

// PlayerRepository caches club rosters. Rosters are read on every
// availability query and change rarely.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) ListByClub(ctx context.Context, clubID string) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, rosterKeyPrefix+clubID, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByClub(ctx, clubID)
		if err != nil {
			return nil, err
		}
		return clonePlayers(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return clonePlayers(items), nil
}

func (r *PlayerRepository) Invalidate(ctx context.Context, clubID string) {
	r.cache.Delete(ctx, rosterKeyPrefix+clubID)
}

type FixtureRepository struct {
	next  fixture.Repository
	cache *basecache.Store
}

func NewFixtureRepository(next fixture.Repository, cache *basecache.Store) *FixtureRepository {
	return &FixtureRepository{next: next, cache: cache}
}

// GetByID caches misses as well, so unknown ids do not hit storage each time.
func (r *FixtureRepository) GetByID(ctx context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, fixtureKeyPrefix+fixtureID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, fixtureID)
		if err != nil {
			return nil, err
		}
		return cachedFixtureByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return fixture.Fixture{}, false, err
	}

	cached, _ := v.(cachedFixtureByID)
	return cached.value, cached.exists, nil
}

func (r *FixtureRepository) Invalidate(ctx context.Context, fixtureID string) {
	r.cache.Delete(ctx, fixtureKeyPrefix+fixtureID)
}

type cachedFixtureByID struct {
	value  fixture.Fixture
	exists bool
}

func clonePlayers(items []player.Player) []player.Player {
	out := make([]player.Player, len(items))
	for i, p := range items {
		if p.SquadNumber != nil {
			n := *p.SquadNumber
			p.SquadNumber = &n
		}
		out[i] = p
	}
	return out
}
