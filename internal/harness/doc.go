// Package harness runs scripted scenarios against the real state machine
// and frame driver on the headless host.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: pause_menu
//	description: "Escape pushes the pause menu, a click pops it"
//	display:
//	  font_size_px: 16
//	  device_pixel_ratio: 2
//	initial: level
//	states:
//	  level:
//	    save: { level: 1 }
//	    on_key: { 27: "push:pause" }
//	  pause:
//	    on_pointer: { left: "pop" }
//	frames:
//	  - advance: 0.016
//	    inputs:
//	      - { type: keydown, key_code: 27, key: Escape }
//	expect:
//	  hooks: [level.on_pushed, level.on_event, pause.on_pushed]
//	  stack: [level, pause]
//	  storage: { level: 1 }
//
// Every state is scripted: each hook returns a fixed transition ("none",
// "pop", "push:<state>" or "set:<state>"), on_key and on_pointer map key
// codes and button names to transitions for on_event, and save replaces the
// persisted value from on_pushed.
//
// # Expectations
//
//   - hooks: the exact "<state>.<hook>" sequence, mount included
//   - stack: the state names bottom to top after the last frame
//   - storage: the persisted value after the last frame
//   - fatal: the RuntimeError code the run must end with
//
// # Deterministic Testing
//
// The host clock only moves when a frame says so, the run id is fixed and
// storage starts from the scenario's stored value in a fresh in-memory
// backend, so identical scenarios produce byte-identical traces for golden
// comparison.
package harness
