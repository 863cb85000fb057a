package scatter

import "fmt"

const (
	DefaultWidth      = 800
	DefaultHeight     = 600
	DefaultPadding    = 80
	DefaultAxisOffset = 60
	DefaultTitle      = "Scatterplot Analysis"
)

// Canvas describes the drawing area. Padding is reserved on every side for
// the axes and their labels.
type Canvas struct {
	Width      int
	Height     int
	Padding    int
	AxisOffset int
	Title      string
}

// DefaultCanvas returns an 800x600 canvas with the stock layout.
func DefaultCanvas() Canvas {
	return Canvas{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Padding:    DefaultPadding,
		AxisOffset: DefaultAxisOffset,
		Title:      DefaultTitle,
	}
}

// GraphWidth is the usable plot width inside the padding.
func (c Canvas) GraphWidth() float64 {
	return float64(c.Width - 2*c.Padding)
}

// GraphHeight is the usable plot height inside the padding.
func (c Canvas) GraphHeight() float64 {
	return float64(c.Height - 2*c.Padding)
}

// Validate checks that the padding leaves a positive plot area.
func (c Canvas) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Padding <= 0 || c.AxisOffset <= 0 {
		return fmt.Errorf("padding and axis offset must be positive, got padding=%d axis_offset=%d", c.Padding, c.AxisOffset)
	}
	if c.GraphWidth() <= 0 || c.GraphHeight() <= 0 {
		return fmt.Errorf("padding %d leaves no plot area on a %dx%d canvas", c.Padding, c.Width, c.Height)
	}
	return nil
}
