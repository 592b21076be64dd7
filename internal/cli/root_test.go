package cli

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/quanta/internal/config"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "quanta", cmd.Use)
	assert.Contains(t, cmd.Long, "headless host")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"run"}, {"test"}, {"storage", "show"}, {"storage", "reset"}, {"config", "check"}, {"config", "show"},
	}

	for _, path := range commands {
		t.Run(path[len(path)-1], func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err, "Command %v should exist", path)
			require.NotNil(t, subCmd)
			assert.Equal(t, path[len(path)-1], subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, err := execute(t, "config", "show", "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "yaml"`)
}

func TestBadConfigFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.cue", `driver: refresh_hz: 0`)

	_, err := execute(t, "config", "show", "--config", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	NewLogger(&buf, config.Log{Level: "warn", Format: "json"}, false).Info("hidden")
	assert.Empty(t, buf.String())

	NewLogger(&buf, config.Log{Level: "warn", Format: "json"}, false).Warn("shown")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	NewLogger(&buf, config.Log{Level: "info", Format: "text"}, true).Debug("verbose")
	assert.Contains(t, buf.String(), "msg=verbose")
	assert.Contains(t, buf.String(), "level="+slog.LevelDebug.String())
}
