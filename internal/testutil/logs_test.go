package testutil

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogBuffer_Count(t *testing.T) {
	buf, logger := NewLogBuffer(slog.LevelInfo)

	logger.Warn("long resolution chain", "frame", 3)
	logger.Warn("long resolution chain", "frame", 4)
	logger.Info("mounted")
	logger.Debug("dropped below level")

	assert.Equal(t, 2, buf.Count("long resolution chain"))
	assert.Equal(t, 1, buf.Count("mounted"))
	assert.Zero(t, buf.Count("dropped below level"))
	assert.Len(t, buf.Lines(), 3)
}

func TestLogBuffer_Empty(t *testing.T) {
	buf, _ := NewLogBuffer(slog.LevelDebug)
	assert.Nil(t, buf.Lines())
	assert.Zero(t, buf.Count("anything"))
}

func TestLogBuffer_ConcurrentWriters(t *testing.T) {
	buf, logger := NewLogBuffer(slog.LevelInfo)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("load failed")
		}()
	}
	wg.Wait()

	assert.Equal(t, 8, buf.Count("load failed"))
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { Discard().Error("ignored") })
}
