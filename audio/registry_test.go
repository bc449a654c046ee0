package audio

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferRegistry_GetInsertRoundTrip(t *testing.T) {
	r := NewBufferRegistry()
	b := NewAudioBuffer(1, 4)

	key := r.Insert(b)
	got, ok := r.Get(key)
	require.True(t, ok)
	assert.Same(t, b, got)
}

func TestBufferRegistry_KeysAreStrictlyIncreasing(t *testing.T) {
	r := NewBufferRegistry()
	var last uint64
	for i := 0; i < 10; i++ {
		key := r.Insert(NewAudioBuffer(1, 1))
		if i > 0 {
			assert.Greater(t, key, last)
		}
		last = key
	}
}

func TestBufferRegistry_EraseThenGetNotFound(t *testing.T) {
	r := NewBufferRegistry()
	key := r.Insert(NewAudioBuffer(1, 1))

	assert.True(t, r.Erase(key))
	_, ok := r.Get(key)
	assert.False(t, ok)
	assert.False(t, r.Erase(key))
}

func TestBufferRegistry_ConcurrentInsertsYieldDistinctKeys(t *testing.T) {
	r := NewBufferRegistry()
	const n = 100

	keys := make(chan uint64, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			keys <- r.Insert(NewAudioBuffer(1, 1))
		}()
	}
	wg.Wait()
	close(keys)

	seen := make(map[uint64]struct{}, n)
	for k := range keys {
		seen[k] = struct{}{}
	}
	assert.Len(t, seen, n)
}
