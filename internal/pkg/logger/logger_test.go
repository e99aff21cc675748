package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestToContextCarriesFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	Set(zap.New(core))

	ctx := ToContext(context.Background(), "request_id", "abc")
	Infof(ctx, "hello %s", "world")
	Debugf(ctx, "dropped")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "hello world", entry.Message)
	assert.Equal(t, "abc", entry.ContextMap()["request_id"])
}

func TestFromContextFallsBackToGlobal(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	Set(zap.New(core))

	Warn(context.Background(), "plain")
	assert.Equal(t, 1, logs.FilterMessage("plain").Len())
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, Init("loud", "json"))
	assert.NoError(t, Init("debug", "console"))
}
