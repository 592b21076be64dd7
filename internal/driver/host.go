package driver

import (
	"math"
	"strconv"
	"strings"
)

// FallbackFontSizePx is used when the host cannot report a font size.
const FallbackFontSizePx = 12

// Metrics are the host display metrics, read once per frame.
type Metrics struct {
	// FontSizePx is the root element's computed font size in CSS pixels.
	FontSizePx float64

	// DevicePixelRatio is the physical-to-logical pixel ratio.
	DevicePixelRatio float64
}

// Host schedules frames and reports time and display metrics.
type Host interface {
	// Now returns the current time in seconds.
	Now() float64

	// RequestFrame schedules fn for the next display refresh. fn runs once.
	RequestFrame(fn func())

	// Metrics returns the current display metrics.
	Metrics() Metrics
}

// RemRatio converts host metrics into device pixels per rem. A missing or
// invalid font size falls back to FallbackFontSizePx and a missing or
// invalid pixel ratio to 1.
func RemRatio(m Metrics) float64 {
	font := m.FontSizePx
	if !(font > 0) || math.IsInf(font, 0) {
		font = FallbackFontSizePx
	}
	dpr := m.DevicePixelRatio
	if !(dpr > 0) || math.IsInf(dpr, 0) {
		dpr = 1
	}
	return font * dpr
}

// ParseFontSize parses a CSS pixel length such as "16px". Anything else
// yields FallbackFontSizePx.
func ParseFontSize(css string) float64 {
	num, ok := strings.CutSuffix(strings.TrimSpace(css), "px")
	if !ok {
		return FallbackFontSizePx
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil || !(v > 0) {
		return FallbackFontSizePx
	}
	return v
}
