package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStore_GetOrLoad_CollapsesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "roster", nil
	}

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan any, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := store.GetOrLoad(context.Background(), "player:club:c1", loader)
			if err == nil {
				results <- v
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	count := 0
	for v := range results {
		require.Equal(t, "roster", v)
		count++
	}
	require.Equal(t, workers, count)
	require.Equal(t, int32(1), calls.Load())
}

func TestStore_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store := NewStore(time.Minute)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "fixture:id:fx-1", 1)
	_, ok := store.Get(context.Background(), "fixture:id:fx-1")
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = store.Get(context.Background(), "fixture:id:fx-1")
	require.False(t, ok)
}

func TestStore_LoaderErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	boom := errors.New("db down")
	_, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (any, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	v, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	require.Equal(t, "ok", v)

	_, err = store.GetOrLoad(context.Background(), "k", func(context.Context) (any, error) {
		t.Fatalf("loader should not run for a cached key")
		return nil, nil
	})
	require.NoError(t, err)
	require.Equal(t, Stats{Hits: 1, Misses: 2}, store.Stats())
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()
	store.Set(ctx, "fixture:id:fx-1", 1)
	store.Set(ctx, "fixture:id:fx-2", 2)
	store.Set(ctx, "player:club:c1", 3)

	store.DeletePrefix(ctx, "fixture:")

	_, ok := store.Get(ctx, "fixture:id:fx-1")
	require.False(t, ok)
	_, ok = store.Get(ctx, "player:club:c1")
	require.True(t, ok)
}
