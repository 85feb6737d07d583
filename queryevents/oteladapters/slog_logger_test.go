package oteladapters_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/sql-query-events-go/queryevents/oteladapters"
	. "github.com/AntonStoeckl/sql-query-events-go/testutil/helper" //nolint:revive
)

func Test_SlogLogger_ForwardsAllLevels(t *testing.T) {
	// setup
	testHandler := NewTestLogHandler(false)
	logger := oteladapters.NewSlogLoggerWithHandler(testHandler)

	// act
	logger.Debug("debug message", "key", "value")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message", "error", "boom")

	// assert
	assert.Equal(t, 4, testHandler.GetRecordCount())
	assert.True(t, testHandler.HasLog(slog.LevelDebug, "debug message"))
	assert.True(t, testHandler.HasLog(slog.LevelInfo, "info message"))
	assert.True(t, testHandler.HasLog(slog.LevelWarn, "warn message"))
	assert.True(t, testHandler.HasLog(slog.LevelError, "error message"))
}

func Test_SlogLogger_WrapsExistingSlogLogger(t *testing.T) {
	// setup
	testHandler := NewTestLogHandler(false)
	logger := oteladapters.NewSlogLogger(slog.New(testHandler))

	// act
	logger.Info("operation completed", "duration_ms", 1.5)

	// assert
	assert.Equal(t, 1, testHandler.GetRecordCount())
	assert.True(t, testHandler.HasLog(slog.LevelInfo, "operation completed"))
}

func Test_SlogBridgeLogger_ForwardsAllLevels_WithContext(t *testing.T) {
	// setup
	ctx := context.Background()
	testHandler := NewTestLogHandler(false)
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(testHandler)

	// act
	logger.DebugContext(ctx, "debug message")
	logger.InfoContext(ctx, "info message")
	logger.WarnContext(ctx, "warn message")
	logger.ErrorContext(ctx, "error message")

	// assert
	assert.Equal(t, 4, testHandler.GetRecordCount())
	assert.True(t, testHandler.HasLog(slog.LevelDebug, "debug message"))
	assert.True(t, testHandler.HasLog(slog.LevelInfo, "info message"))
	assert.True(t, testHandler.HasLog(slog.LevelWarn, "warn message"))
	assert.True(t, testHandler.HasLog(slog.LevelError, "error message"))
}
