package profiler

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickLogsOncePerInterval(t *testing.T) {
	var buf bytes.Buffer
	clock := time.Unix(1000, 0)
	p := NewProfiler(
		WithLogger(zerolog.New(&buf)),
		WithClock(func() time.Time { return clock }),
		WithFields(func(e *zerolog.Event) { e.Str("stage", "complete") }),
	)

	for i := 0; i < 39; i++ {
		clock = clock.Add(25 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	assert.Zero(t, buf.Len())

	clock = clock.Add(25 * time.Millisecond)
	require.True(t, p.Tick())

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "profiler", event["message"])
	assert.Equal(t, "complete", event["stage"])
	assert.InDelta(t, 40, event["fps"], 0.01)
	assert.Contains(t, event, "heap_mb")

	buf.Reset()
	clock = clock.Add(100 * time.Millisecond)
	assert.False(t, p.Tick())
	assert.Zero(t, buf.Len())
}
