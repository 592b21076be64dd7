package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_Fixtures(t *testing.T) {
	paths, err := filepath.Glob("testdata/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := LoadScenario(path)
			require.NoError(t, err)
			assert.NotEmpty(t, s.Name)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("testdata/does_not_exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenario_Fields(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: demo
description: "demo"
display: { font_size_px: 20, device_pixel_ratio: 2, width: 320, height: 240 }
initial: a
states:
  a:
    on_update: "push:b"
    on_key: { 27: "pop" }
    on_pointer: { right: "set:b" }
    save: { coins: 5 }
  b: {}
frames:
  - advance: 0.5
    inputs:
      - { type: touchstart, touches: [[1, 2], [3, 4]] }
`))
	require.NoError(t, err)

	assert.Equal(t, Display{FontSizePx: 20, DevicePixelRatio: 2, Width: 320, Height: 240}, s.Display)
	assert.Equal(t, "push:b", s.States["a"].OnUpdate)
	assert.Equal(t, "pop", s.States["a"].OnKey[27])
	assert.Equal(t, "set:b", s.States["a"].OnPointer["right"])
	assert.Equal(t, map[string]any{"coins": 5}, s.States["a"].Save)
	require.Len(t, s.Frames, 1)
	assert.Equal(t, 0.5, s.Frames[0].Advance)
	assert.Equal(t, [][2]float64{{1, 2}, {3, 4}}, s.Frames[0].Inputs[0].Touches)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown field",
			yaml:    "name: x\ndescription: x\ninitial: a\nstates: { a: {} }\nassertion: []\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "missing name",
			yaml:    "description: x\ninitial: a\nstates: { a: {} }\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: x\ninitial: a\nstates: { a: {} }\n",
			wantErr: "description is required",
		},
		{
			name:    "no states",
			yaml:    "name: x\ndescription: x\ninitial: a\n",
			wantErr: "states map is required",
		},
		{
			name:    "undefined initial",
			yaml:    "name: x\ndescription: x\ninitial: z\nstates: { a: {} }\n",
			wantErr: `initial state "z" is not defined`,
		},
		{
			name:    "push to undefined state",
			yaml:    "name: x\ndescription: x\ninitial: a\nstates: { a: { on_update: 'push:z' } }\n",
			wantErr: `names undefined state "z"`,
		},
		{
			name:    "pop with state",
			yaml:    "name: x\ndescription: x\ninitial: a\nstates: { a: { on_popped: 'pop:a' } }\n",
			wantErr: "takes no state",
		},
		{
			name:    "unknown transition",
			yaml:    "name: x\ndescription: x\ninitial: a\nstates: { a: { on_key: { 27: 'jump' } } }\n",
			wantErr: `unknown transition "jump"`,
		},
		{
			name:    "unknown button",
			yaml:    "name: x\ndescription: x\ninitial: a\nstates: { a: { on_pointer: { thumb: pop } } }\n",
			wantErr: `unknown button "thumb"`,
		},
		{
			name:    "state name with dot",
			yaml:    "name: x\ndescription: x\ninitial: a.b\nstates: { a.b: {} }\n",
			wantErr: "must not contain",
		},
		{
			name:    "negative advance",
			yaml:    "name: x\ndescription: x\ninitial: a\nstates: { a: {} }\nframes: [ { advance: -1 } ]\n",
			wantErr: "advance must be non-negative",
		},
		{
			name:    "unknown input",
			yaml:    "name: x\ndescription: x\ninitial: a\nstates: { a: {} }\nframes: [ { inputs: [ { type: click } ] } ]\n",
			wantErr: `unknown input type "click"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseTransition(t *testing.T) {
	states := map[string]StateScript{"menu": {}}

	tests := []struct {
		spec       string
		kind, name string
	}{
		{"", "none", ""},
		{"none", "none", ""},
		{"pop", "pop", ""},
		{"push:menu", "push", "menu"},
		{"set:menu", "set", "menu"},
	}
	for _, tt := range tests {
		kind, name, err := parseTransition(tt.spec, states)
		require.NoError(t, err, tt.spec)
		assert.Equal(t, tt.kind, kind, tt.spec)
		assert.Equal(t, tt.name, name, tt.spec)
	}
}
