package common_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/craftchain-go/internal/application/common"
)

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.messages = append(l.messages, level+" "+message)
}

func TestLoggerFromContext(t *testing.T) {
	// falls back to a no-op logger
	assert.NotPanics(t, func() {
		common.LoggerFromContext(context.Background()).Log(common.LevelInfo, "ignored", nil)
	})

	logger := &recordingLogger{}
	ctx := common.WithLogger(context.Background(), logger)
	common.LoggerFromContext(ctx).Log(common.LevelWarn, "careful", nil)

	assert.Equal(t, []string{"WARNING careful"}, logger.messages)
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Empty(t, common.RequestIDFromContext(context.Background()))

	ctx := common.WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", common.RequestIDFromContext(ctx))
}
