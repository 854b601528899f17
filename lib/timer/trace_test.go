package timer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

func TestTracing(t *testing.T) {
	// no trace on the context: nothing is recorded
	ctx := context.Background()
	Mark(ctx, "ignored")
	assert.Empty(t, Events(ctx))

	ctx = WithTracing(ctx)
	Mark(ctx, "first")
	Mark(ctx, "second")
	assert.Equal(t, []string{"first", "second"}, Events(ctx))

	core, logs := observer.New(zapcore.DebugLevel)
	assert.NoError(t, LogTracingInfo(ctx, zap.New(core)))
	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "first")
	assert.Contains(t, entries[0].Message, "second")
}

func TestTimer(t *testing.T) {
	elapsed := Start("timer_test").Stop()
	assert.GreaterOrEqual(t, elapsed, 0.0)
}
