package id

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceStartsAtOne(t *testing.T) {
	var s Sequence

	assert.Equal(t, uint64(0), s.Last())
	assert.Equal(t, uint64(1), s.Next())
	assert.Equal(t, uint64(2), s.Next())
	assert.Equal(t, uint64(2), s.Last())
}

func TestSequenceConcurrentUnique(t *testing.T) {
	var s Sequence
	var mu sync.Mutex
	seen := make(map[uint64]bool)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				v := s.Next()
				mu.Lock()
				seen[v] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 800)
	assert.Equal(t, uint64(800), s.Last())
}

func TestGenerateWithPrefix(t *testing.T) {
	gen := NewGenerator()

	for _, prefix := range []string{SessionPrefix, RequestPrefix} {
		value := gen.GenerateWithPrefix(prefix)
		require.True(t, strings.HasPrefix(value, prefix+"_"), value)

		parts := strings.SplitN(value, "_", 2)
		require.Len(t, parts, 2)
		assert.True(t, IsValid(parts[1]), "ULID part should be valid: %s", parts[1])
	}
}

func TestSessionIDsSortable(t *testing.T) {
	a := NewSessionID()
	b := NewSessionID()

	assert.NotEqual(t, a, b)
	assert.Less(t, a.String(), b.String())
}

func TestTimestamp(t *testing.T) {
	gen := NewGenerator()
	value := gen.Generate().String()

	ts, err := Timestamp(value)
	require.NoError(t, err)
	assert.False(t, ts.IsZero())

	_, err = Timestamp("not-a-ulid")
	assert.Error(t, err)
}
