package geom

import "math"

// Smooth is a scalar that moves toward a target at a fixed speed in units
// per second. Call Update once per frame with the frame's delta time.
type Smooth struct {
	value  float64
	target float64
	speed  float64
}

// NewSmooth starts at v with no pending change.
func NewSmooth(v, speed float64) *Smooth {
	return &Smooth{value: v, target: v, speed: speed}
}

// Target returns the value being moved toward.
func (s *Smooth) Target() float64 { return s.target }

// Set changes the target. The current value keeps moving from where it is.
func (s *Smooth) Set(target float64) { s.target = target }

// Reset jumps to v with no pending change.
func (s *Smooth) Reset(v float64) {
	s.value = v
	s.target = v
}

// Value returns the in-between value for drawing.
func (s *Smooth) Value() float64 { return s.value }

// Settled reports whether the value has reached the target.
func (s *Smooth) Settled() bool { return s.value == s.target }

// Update advances the value by speed*dt toward the target, stopping on it.
func (s *Smooth) Update(dt float64) {
	dist := s.target - s.value
	step := s.speed * dt
	if math.Abs(dist) <= step {
		s.value = s.target
		return
	}
	s.value += math.Copysign(step, dist)
}
