package slotpool_test

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/hupe1980/slotpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for concurrent writes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newCapturingLogger(level slog.Level) (*slotpool.Logger, *syncBuffer) {
	buf := &syncBuffer{}
	return slotpool.NewLogger(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: level})), buf
}

func TestLogging_GrowAndPrune(t *testing.T) {
	logger, buf := newCapturingLogger(slog.LevelDebug)
	p := newPointPool(t, slotpool.WithInitialSize(1), slotpool.WithLogger(logger.WithPool("points")))

	handles := checkoutN(t, p, 3)
	releaseAll(t, p, handles)
	require.NoError(t, p.Prune())
	require.NoError(t, p.Close())

	out := buf.String()
	assert.Contains(t, out, `"msg":"pool created"`)
	assert.Contains(t, out, `"msg":"pool grown"`)
	assert.Contains(t, out, `"msg":"pool pruned"`)
	assert.Contains(t, out, `"trigger":"manual"`)
	assert.Contains(t, out, `"msg":"pool closed"`)
	assert.Contains(t, out, `"pool":"points"`)
}

func TestLogging_ExhaustionIsThrottled(t *testing.T) {
	logger, buf := newCapturingLogger(slog.LevelWarn)
	p := newPointPool(t, slotpool.WithInitialSize(1), slotpool.WithMaxSize(2), slotpool.WithLogger(logger))

	checkoutN(t, p, 2)
	for i := 0; i < 100; i++ {
		_, err := p.Checkout(&point{})
		require.ErrorIs(t, err, slotpool.ErrPoolExhausted)
	}

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, `"msg":"pool exhausted"`))
	assert.NotContains(t, out, `"msg":"pool grown"`, "debug output is filtered")
}

func TestLogging_CloseWithOutstandingHandles(t *testing.T) {
	logger, buf := newCapturingLogger(slog.LevelWarn)
	p := newPointPool(t, slotpool.WithInitialSize(2), slotpool.WithLogger(logger))

	checkoutN(t, p, 1)
	require.NoError(t, p.Close())
	assert.Contains(t, buf.String(), `"msg":"pool closed with outstanding handles"`)
}

func TestNoopLogger(t *testing.T) {
	logger := slotpool.NoopLogger()
	assert.False(t, logger.Enabled(t.Context(), slog.LevelError))
}
