package id

import (
	"slices"
	"sync"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("returns_a_ulid", func(t *testing.T) {
		_, err := ulid.ParseStrict(New())
		require.NoError(t, err)
	})

	t.Run("ids_are_monotonic", func(t *testing.T) {
		length := 10000
		ids := make([]string, 0, length)
		for range length {
			ids = append(ids, New())
		}

		require.True(t, slices.IsSorted(ids))
		require.Len(t, slices.Compact(slices.Clone(ids)), length)
	})
}

func TestNewIsSafeForConcurrentUse(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]struct{}{}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 500 {
				id := New()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, 8*500)
}
