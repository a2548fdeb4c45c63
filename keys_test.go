package componentbuilder

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func collectKeys(kg KeyGenerator, goroutines, perGoroutine int) map[string]int {
	keys := map[string]int{}
	mu := sync.Mutex{}
	wg := sync.WaitGroup{}
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]string, 0, perGoroutine)
			for i := 0; i < perGoroutine; i++ {
				local = append(local, kg.NextKey())
			}
			mu.Lock()
			for _, k := range local {
				keys[k]++
			}
			mu.Unlock()
		}()
	}
	wg.Wait()
	return keys
}

func TestCounterKeysConcurrent(t *testing.T) {
	keys := collectKeys(NewCounterKeys("key"), 8, 500)
	assert.Len(t, keys, 8*500)
	for k, count := range keys {
		assert.Equal(t, 1, count, k)
		assert.True(t, strings.HasPrefix(k, "key-"), k)
	}
}

func TestCounterKeysShareSequence(t *testing.T) {
	a := NewCounterKeys("key")
	b := NewCounterKeys("key")
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		for _, k := range []string{a.NextKey(), b.NextKey(), DefaultKeys.NextKey()} {
			assert.False(t, seen[k], k)
			seen[k] = true
		}
	}
}

func TestUUIDKeys(t *testing.T) {
	keys := collectKeys(NewUUIDKeys(), 4, 250)
	assert.Len(t, keys, 1000)
	for k := range keys {
		assert.True(t, strings.HasPrefix(k, "key-"), k)
		assert.Len(t, k, len("key-")+36)
	}
}
