package scatter

import (
	"math"
	"strconv"
	"strings"
)

// TickSteps is the number of intervals per axis; each axis gets TickSteps+1 ticks.
const TickSteps = 5

// PixelPoint is a canvas position in pixels, origin top-left.
type PixelPoint struct {
	X float64
	Y float64
}

// Tick is one graduation on an axis.
type Tick struct {
	Index int
	Value float64
	Pixel float64
}

// MapX maps a data x value to a pixel column. A zero-width x range centers
// every point horizontally.
func MapX(v float64, b Bounds, c Canvas) float64 {
	w := c.GraphWidth()
	pad := float64(c.Padding)
	if b.MaxX == b.MinX {
		return pad + w/2
	}
	return pad + fraction(v, b.MinX, b.MaxX)*w
}

// MapY maps a data y value to a pixel row. Screen rows grow downwards, so
// larger values land higher on the canvas.
func MapY(v float64, b Bounds, c Canvas) float64 {
	h := c.GraphHeight()
	pad := float64(c.Padding)
	if b.MaxY == b.MinY {
		return pad + h/2
	}
	return pad + h - fraction(v, b.MinY, b.MaxY)*h
}

// MapPoint maps a record to its pixel position.
func MapPoint(r Record, b Bounds, c Canvas) PixelPoint {
	return PixelPoint{X: MapX(r.X, b, c), Y: MapY(r.Y, b, c)}
}

// Ticks returns steps+1 evenly spaced values from lo to hi, both included,
// each mapped through pixel.
func Ticks(lo, hi float64, steps int, pixel func(float64) float64) []Tick {
	if steps <= 0 {
		steps = TickSteps
	}
	ticks := make([]Tick, 0, steps+1)
	for i := 0; i <= steps; i++ {
		v := lerp(lo, hi, float64(i)/float64(steps))
		ticks = append(ticks, Tick{Index: i, Value: v, Pixel: pixel(v)})
	}
	return ticks
}

// fraction returns how far v lies along [lo, hi]. A range whose width
// overflows float64 is measured at half scale, which is exact for normal
// numbers.
func fraction(v, lo, hi float64) float64 {
	if d := hi - lo; !math.IsInf(d, 0) {
		return (v - lo) / d
	}
	return (v/2 - lo/2) / (hi/2 - lo/2)
}

// lerp is the inverse of fraction.
func lerp(lo, hi, t float64) float64 {
	if d := hi - lo; !math.IsInf(d, 0) {
		return lo + d*t
	}
	return 2 * (lo/2 + (hi/2-lo/2)*t)
}

// XTicks returns the x-axis ticks for b on canvas c.
func XTicks(b Bounds, c Canvas) []Tick {
	return Ticks(b.MinX, b.MaxX, TickSteps, func(v float64) float64 { return MapX(v, b, c) })
}

// YTicks returns the y-axis ticks for b on canvas c.
func YTicks(b Bounds, c Canvas) []Tick {
	return Ticks(b.MinY, b.MaxY, TickSteps, func(v float64) float64 { return MapY(v, b, c) })
}

// FormatNumber renders integer values without a decimal point and everything
// else with one fractional digit, dropping a trailing ".0" left by rounding
// (4.96 -> "5"). Rounding is strconv's correctly rounded conversion of the
// exact binary value, so exact ties go to even: 0.25 -> "0.2", 0.75 -> "0.8".
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	if s == "-0" {
		return "0"
	}
	return s
}
