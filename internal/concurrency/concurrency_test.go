package concurrency

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestNewPool(t *testing.T) {
	t.Cleanup(func() {
		goleak.VerifyNone(t)
	})

	t.Run("runs_every_task", func(t *testing.T) {
		var count atomic.Int32
		p := NewPool(context.Background(), 3)
		for range 10 {
			p.Go(func(ctx context.Context) error {
				count.Add(1)
				return nil
			})
		}
		require.NoError(t, p.Wait())
		require.Equal(t, int32(10), count.Load())
	})

	t.Run("returns_first_error_and_cancels", func(t *testing.T) {
		boom := errors.New("boom")
		p := NewPool(context.Background(), 1)
		p.Go(func(ctx context.Context) error {
			return boom
		})
		p.Go(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})
		require.ErrorIs(t, p.Wait(), boom)
	})

	t.Run("non_positive_limit", func(t *testing.T) {
		p := NewPool(context.Background(), 0)
		p.Go(func(ctx context.Context) error { return nil })
		require.NoError(t, p.Wait())
	})
}
