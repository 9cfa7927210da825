package domain

import (
	"fmt"
	"math"
)

// RGBA is a colour with float components in [0, 1].
type RGBA struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

var (
	Blue   = RGBA{R: 0, G: 0, B: 1, A: 1}
	Yellow = RGBA{R: 1, G: 1, B: 0, A: 1}
	Red    = RGBA{R: 1, G: 0, B: 0, A: 1}
	White  = RGBA{R: 1, G: 1, B: 1, A: 1}
)

// Lerp blends a towards b per channel. t is not clamped.
func Lerp(a, b RGBA, t float64) RGBA {
	return RGBA{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}

// WithAlpha returns c with its alpha replaced by alpha clamped to [0, 1].
func (c RGBA) WithAlpha(alpha float64) RGBA {
	c.A = clamp01(alpha)
	return c
}

// Hex formats the colour as "#rrggbb", ignoring alpha.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel8(c.R), channel8(c.G), channel8(c.B))
}

func channel8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
