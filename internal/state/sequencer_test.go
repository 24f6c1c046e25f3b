package state

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySequencerIsPerKey(t *testing.T) {
	ctx := context.Background()
	seq := NewMemorySequencer()

	current, err := seq.Current(ctx, "a")
	require.NoError(t, err)
	assert.Zero(t, current)

	first, _ := seq.Next(ctx, "a")
	second, _ := seq.Next(ctx, "a")
	other, _ := seq.Next(ctx, "b")

	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)
	assert.Equal(t, int64(1), other)

	current, _ = seq.Current(ctx, "a")
	assert.Equal(t, int64(2), current)
}

func TestMemorySequencerConcurrentTokensAreUnique(t *testing.T) {
	ctx := context.Background()
	seq := NewMemorySequencer()

	const n = 100
	tokens := make([]int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i], _ = seq.Next(ctx, "session")
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool, n)
	for _, tok := range tokens {
		assert.False(t, seen[tok])
		seen[tok] = true
	}
	current, _ := seq.Current(ctx, "session")
	assert.Equal(t, int64(n), current)
}
