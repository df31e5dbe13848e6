package idgen

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSnowflakeGenerator_InvalidNode(t *testing.T) {
	_, err := NewSnowflakeGenerator(4096)
	assert.Error(t, err)
}

func TestSnowflakeGenerator_UniqueConcurrent(t *testing.T) {
	gen, err := NewSnowflakeGenerator(1)
	require.NoError(t, err)

	const workers, perWorker = 8, 200
	ids := make(chan int64, workers*perWorker)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				ids <- gen.GenerateID()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]struct{}, workers*perWorker)
	for id := range ids {
		assert.Positive(t, id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, workers*perWorker)
}
