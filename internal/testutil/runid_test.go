package testutil

import (
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequentialRunIDGenerator(t *testing.T) {
	gen := NewSequentialRunIDGenerator("test")

	assert.Equal(t, "test-0001", gen.Generate())
	assert.Equal(t, "test-0002", gen.Generate())
	assert.Equal(t, "test-0003", gen.Generate())
}

func TestSequentialRunIDGenerator_DefaultPrefix(t *testing.T) {
	gen := NewSequentialRunIDGenerator("")
	assert.Equal(t, "run-0001", gen.Generate())
}

func TestSequentialRunIDGenerator_ThreadSafe(t *testing.T) {
	gen := NewSequentialRunIDGenerator("p")

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[string]bool)
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := gen.Generate()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 1000, "every ID is unique")
}

func TestWriteFile(t *testing.T) {
	path := WriteFile(t, t.TempDir(), "nested/prog.bf", "+.")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "+.", string(data))
}
