package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestCommandMissingArgs(t *testing.T) {
	_, err := execute(t, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentDir(t *testing.T) {
	_, err := execute(t, "test", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommandEmptyDir(t *testing.T) {
	out, err := execute(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestTestCommandAllPass(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "demo.yaml", passingScenario)

	out, err := execute(t, "test", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ cli_demo")
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
}

func TestTestCommandReportsFailures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "demo.yaml", passingScenario)
	writeFile(t, dir, "broken.yaml", failingScenario)

	out, err := execute(t, "test", dir, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 1, resp.Data.Passed)
	assert.Equal(t, 1, resp.Data.Failed)
}

func TestTestCommandFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "demo.yaml", passingScenario)
	writeFile(t, dir, "broken.yaml", failingScenario)

	out, err := execute(t, "test", dir, "--filter", "dem*")
	require.NoError(t, err)
	assert.Contains(t, out, "1 total")
}

func TestTestCommandGoldenUpdateAndCompare(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "demo.yaml", passingScenario)

	out, err := execute(t, "test", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "golden updated")

	golden, err := os.ReadFile(filepath.Join(dir, "golden", "demo.golden"))
	require.NoError(t, err)
	assert.Contains(t, string(golden), `"scenario":"cli_demo"`)

	_, err = execute(t, "test", dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "golden", "demo.golden"), []byte(`{}`), 0644))
	out, err = execute(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "trace does not match golden file")
}
