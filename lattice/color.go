package lattice

import "math"

// Color identifies a bubble color. Two bubbles match when their colors are equal.
type Color uint8

const (
	Red Color = iota
	Blue
	Green
	Yellow
	Purple
	Cyan
)

// MaxPalette is the number of defined colors.
const MaxPalette = 6

var colorNames = [MaxPalette]string{"red", "blue", "green", "yellow", "purple", "cyan"}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}

// DefaultColorStep is the phase increment of the cycler. It is not a multiple
// of 1/palette, so consecutive colors repeat irregularly.
const DefaultColorStep = 0.77

// ColorCycler produces a deterministic, irregular color sequence.
type ColorCycler struct {
	phase float64
	step  float64
	size  int
}

// NewColorCycler creates a cycler over the first size colors of the palette.
// size is clamped to [1, MaxPalette]; a non-positive step uses DefaultColorStep.
func NewColorCycler(size int, step float64) *ColorCycler {
	if size < 1 {
		size = 1
	}
	if size > MaxPalette {
		size = MaxPalette
	}
	if step <= 0 {
		step = DefaultColorStep
	}
	return &ColorCycler{step: step, size: size}
}

// Next advances the phase and returns the color it lands on.
func (c *ColorCycler) Next() Color {
	c.phase += c.step
	return Color(int(math.Floor(math.Mod(c.phase, float64(c.size)))))
}

// Reset rewinds the cycler to its initial phase.
func (c *ColorCycler) Reset() {
	c.phase = 0
}

// Size returns the palette size.
func (c *ColorCycler) Size() int {
	return c.size
}
