package serializer

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWarnThrottle(t *testing.T) {
	t.Run("one in n", func(t *testing.T) {
		var w warnThrottle
		allowed := 0
		for i := 0; i < 10; i++ {
			if w.allow(3) {
				allowed++
			}
		}
		// occurrences 1, 4, 7, 10
		require.Equal(t, 4, allowed)
	})

	t.Run("concurrent callers", func(t *testing.T) {
		var w warnThrottle
		var allowed atomic.Int64

		var wg sync.WaitGroup
		for g := 0; g < 10; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 1000; i++ {
					if w.allow(timestampWarningThrottle) {
						allowed.Add(1)
					}
				}
			}()
		}
		wg.Wait()

		require.Equal(t, int64(10), allowed.Load())
		require.Equal(t, int64(0), w.counter.Load())
	})
}
