package harness

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/quanta/internal/input"
)

// Scenario is one scripted run.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Display sets the host metrics and surface size.
	Display Display `yaml:"display,omitempty"`

	// RunID is the fixed run id. Default: "scenario-run".
	RunID string `yaml:"run_id,omitempty"`

	// Initial names the state pushed at mount.
	Initial string `yaml:"initial"`

	// States maps state names to their scripts.
	States map[string]StateScript `yaml:"states"`

	// Assets are image URLs loaded by the game before the first frame.
	// Loads never delay the run.
	Assets []string `yaml:"assets,omitempty"`

	// Stored is the persisted value present before mount.
	Stored map[string]any `yaml:"stored,omitempty"`

	// Frames run in order after mount.
	Frames []Frame `yaml:"frames"`

	// Expect is checked after the last frame, or after a fatal error.
	Expect Expect `yaml:"expect"`
}

// Display configures the headless host.
type Display struct {
	FontSizePx       float64 `yaml:"font_size_px,omitempty"`
	DevicePixelRatio float64 `yaml:"device_pixel_ratio,omitempty"`
	Width            float64 `yaml:"width,omitempty"`
	Height           float64 `yaml:"height,omitempty"`
}

// StateScript fixes what each hook of a state returns.
type StateScript struct {
	OnPushed string `yaml:"on_pushed,omitempty"`
	OnUpdate string `yaml:"on_update,omitempty"`
	OnPopped string `yaml:"on_popped,omitempty"`

	// OnKey maps key_down codes to transitions.
	OnKey map[uint32]string `yaml:"on_key,omitempty"`

	// OnPointer maps pointer_down button names to transitions.
	OnPointer map[string]string `yaml:"on_pointer,omitempty"`

	// Save replaces the persisted value from on_pushed.
	Save map[string]any `yaml:"save,omitempty"`
}

// Frame is one display refresh.
type Frame struct {
	// Advance is the time in seconds since the previous frame. Default: 1/60.
	Advance float64 `yaml:"advance,omitempty"`

	// Inputs are delivered to the host before the frame runs.
	Inputs []RawInput `yaml:"inputs,omitempty"`
}

// RawInput is a host event in logical pixels.
type RawInput struct {
	Type    string       `yaml:"type"`
	X       float64      `yaml:"x,omitempty"`
	Y       float64      `yaml:"y,omitempty"`
	Button  int16        `yaml:"button,omitempty"`
	Buttons uint16       `yaml:"buttons,omitempty"`
	DeltaX  float64      `yaml:"delta_x,omitempty"`
	DeltaY  float64      `yaml:"delta_y,omitempty"`
	Touches [][2]float64 `yaml:"touches,omitempty"`
	KeyCode uint32       `yaml:"key_code,omitempty"`
	Key     string       `yaml:"key,omitempty"`
	Repeat  bool         `yaml:"repeat,omitempty"`
	Shift   bool         `yaml:"shift,omitempty"`
}

// Expect holds the checks run after the scenario. Empty fields are skipped.
type Expect struct {
	Hooks   []string       `yaml:"hooks,omitempty"`
	Stack   []string       `yaml:"stack,omitempty"`
	Storage map[string]any `yaml:"storage,omitempty"`
	Fatal   string         `yaml:"fatal,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or fails validation.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

var knownInputs = map[string]bool{
	input.RawContextMenu: true,
	input.RawMouseDown:   true,
	input.RawMouseUp:     true,
	input.RawMouseMove:   true,
	input.RawWheel:       true,
	input.RawTouchStart:  true,
	input.RawTouchMove:   true,
	input.RawTouchEnd:    true,
	input.RawKeyDown:     true,
	input.RawKeyUp:       true,
}

var knownButtons = map[string]bool{
	"left": true, "middle": true, "right": true, "back": true, "forward": true,
}

// validateScenario checks that required fields are present and that every
// transition names a scripted state.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.States) == 0 {
		return fmt.Errorf("states map is required and must be non-empty")
	}
	if _, ok := s.States[s.Initial]; !ok {
		return fmt.Errorf("initial state %q is not defined", s.Initial)
	}

	names := make([]string, 0, len(s.States))
	for name := range s.States {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if strings.ContainsAny(name, ".:") {
			return fmt.Errorf("states[%s]: name must not contain '.' or ':'", name)
		}
		script := s.States[name]
		check := func(field, spec string) error {
			if _, _, err := parseTransition(spec, s.States); err != nil {
				return fmt.Errorf("states[%s].%s: %w", name, field, err)
			}
			return nil
		}
		if err := check("on_pushed", script.OnPushed); err != nil {
			return err
		}
		if err := check("on_update", script.OnUpdate); err != nil {
			return err
		}
		if err := check("on_popped", script.OnPopped); err != nil {
			return err
		}
		for code, spec := range script.OnKey {
			if err := check(fmt.Sprintf("on_key[%d]", code), spec); err != nil {
				return err
			}
		}
		for button, spec := range script.OnPointer {
			if !knownButtons[button] {
				return fmt.Errorf("states[%s].on_pointer: unknown button %q", name, button)
			}
			if err := check("on_pointer["+button+"]", spec); err != nil {
				return err
			}
		}
	}

	for i, f := range s.Frames {
		if f.Advance < 0 {
			return fmt.Errorf("frames[%d]: advance must be non-negative", i)
		}
		for j, in := range f.Inputs {
			if !knownInputs[in.Type] {
				return fmt.Errorf("frames[%d].inputs[%d]: unknown input type %q", i, j, in.Type)
			}
		}
	}
	return nil
}

// parseTransition splits "kind[:state]". The kind is one of none, pop,
// push and set; push and set need a defined state.
func parseTransition(spec string, states map[string]StateScript) (kind, target string, err error) {
	kind, target, _ = strings.Cut(spec, ":")
	switch kind {
	case "", "none", "pop":
		if target != "" {
			return "", "", fmt.Errorf("transition %q takes no state", spec)
		}
		if kind == "" {
			kind = "none"
		}
		return kind, "", nil
	case "push", "set":
		if _, ok := states[target]; !ok {
			return "", "", fmt.Errorf("transition %q names undefined state %q", spec, target)
		}
		return kind, target, nil
	default:
		return "", "", fmt.Errorf("unknown transition %q", spec)
	}
}
