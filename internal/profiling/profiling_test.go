package profiling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrackAccumulatesAndResets(t *testing.T) {
	ResetFrame()
	Track("chunk.a")()
	Track("chunk.a")()
	Track("world.b")()

	assert.Equal(t, 2, Count("chunk.a"))
	assert.Contains(t, Snapshot(), "world.b")

	ResetFrame()
	assert.Empty(t, Snapshot())
	assert.Zero(t, Count("chunk.a"))
}

func TestSumWithPrefix(t *testing.T) {
	ResetFrame()
	mu.Lock()
	frameTotals["chunk.a"] = 2 * time.Millisecond
	frameTotals["chunk.b"] = 3 * time.Millisecond
	frameTotals["world.c"] = 7 * time.Millisecond
	mu.Unlock()

	assert.Equal(t, 5*time.Millisecond, SumWithPrefix("chunk."))
	assert.Equal(t, "world.c:7ms, chunk.b:3ms", TopN(2))
	ResetFrame()
}

func TestFormatMs(t *testing.T) {
	assert.Equal(t, "4.2ms", formatMs(4200*time.Microsecond))
	assert.Equal(t, "0ms", formatMs(20*time.Microsecond))
	assert.Equal(t, "12ms", formatMs(12*time.Millisecond))
}
