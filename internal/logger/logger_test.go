package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestInit(t *testing.T) {
	previous := Logger
	defer func() { Logger = previous }()

	assert.NoError(t, Init("debug"))
	assert.True(t, Logger.Core().Enabled(zap.DebugLevel))

	assert.NoError(t, Init("warn"))
	assert.False(t, Logger.Core().Enabled(zap.InfoLevel))

	assert.Error(t, Init("loud"))
}
