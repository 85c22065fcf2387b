package logging_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fivetwenty-io/lostfound-e2e/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]logging.Level{
		"debug":   logging.LevelDebug,
		"DEBUG":   logging.LevelDebug,
		"info":    logging.LevelInfo,
		"warning": logging.LevelWarn,
		"warn":    logging.LevelWarn,
		" error ": logging.LevelError,
		"":        logging.LevelInfo,
		"verbose": logging.LevelInfo,
	}

	for in, want := range tests {
		assert.Equal(t, want, logging.ParseLevel(in), in)
	}

	assert.Equal(t, "warn", logging.LevelWarn.String())
}

func TestConsoleLogger_Format(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.NewConsoleLogger(&buf, logging.WithoutColor(), logging.WithClock(fixedClock))
	logger.Info("request sent", map[string]interface{}{"url": "http://x/y", "method": "GET"})

	assert.Equal(t, "[2024-01-02T15:04:05Z] INFO request sent method=GET url=http://x/y\n", buf.String())
}

func TestConsoleLogger_Levels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.NewConsoleLogger(&buf,
		logging.WithoutColor(),
		logging.WithClock(fixedClock),
		logging.WithLevel(logging.LevelWarn),
	)

	logger.Debug("hidden", nil)
	logger.Info("hidden", nil)
	logger.Success("hidden", nil)
	logger.Warn("shown warn", nil)
	logger.Error("shown error", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "WARN shown warn")
	assert.Contains(t, lines[1], "ERROR shown error")
	assert.Equal(t, logging.LevelWarn, logger.Level())
}

func TestConsoleLogger_Success(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.NewConsoleLogger(&buf, logging.WithoutColor(), logging.WithClock(fixedClock))
	logger.Success("user created", map[string]interface{}{"email": "a@b.c"})

	assert.Contains(t, buf.String(), "SUCCESS user created email=a@b.c")
}

func TestNop(t *testing.T) {
	t.Parallel()

	logger := logging.Nop()

	assert.NotPanics(t, func() {
		logger.Debug("x", nil)
		logger.Info("x", nil)
		logger.Success("x", nil)
		logger.Warn("x", nil)
		logger.Error("x", map[string]interface{}{"k": 1})
	})
}
