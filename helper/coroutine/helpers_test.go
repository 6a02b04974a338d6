package coroutine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapKeepsOrder(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	results := Map(context.Background(), 3, items, func(n int) (int, error) {
		if n == 4 {
			return 0, errors.New("four")
		}
		return n * n, nil
	})

	assert.Len(t, results, len(items))
	for i, n := range items {
		if n == 4 {
			assert.EqualError(t, results[i].Err, "four")
			continue
		}
		assert.NoError(t, results[i].Err)
		assert.Equal(t, n*n, results[i].Value)
	}
}

func TestMapRespectsLimit(t *testing.T) {
	var running, peak atomic.Int32
	items := make([]int, 20)
	Map(context.Background(), 2, items, func(int) (struct{}, error) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		running.Add(-1)
		return struct{}{}, nil
	})
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestMapCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	results := Map(ctx, 2, []string{"a", "b"}, func(s string) (string, error) {
		calls.Add(1)
		return s, nil
	})
	assert.Equal(t, int32(0), calls.Load())
	for _, result := range results {
		assert.ErrorIs(t, result.Err, context.Canceled)
	}
}
