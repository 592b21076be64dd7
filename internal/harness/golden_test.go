package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGolden_Fixtures(t *testing.T) {
	for _, name := range []string{"pause_menu", "popped_last", "lifo_drain"} {
		t.Run(name, func(t *testing.T) {
			s, err := LoadScenario(filepath.Join("testdata", name+".yaml"))
			require.NoError(t, err)

			result, err := RunWithGolden(t, s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestGolden_Deterministic(t *testing.T) {
	s, err := LoadScenario("testdata/pause_menu.yaml")
	require.NoError(t, err)

	first, err := Run(s)
	require.NoError(t, err)
	second, err := Run(s)
	require.NoError(t, err)

	a, err := first.Trace.MarshalCanonical()
	require.NoError(t, err)
	b, err := second.Trace.MarshalCanonical()
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}
