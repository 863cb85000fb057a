package drawio

// Scatterplot assembly
// Lays out title, axes, ticks with labels and one marker per record
// Element ids: chart-title, axis-x, axis-y, xtick-N, xlabel-N, ytick-N, ylabel-N, pt-N

import (
	"fmt"
	"time"

	"scatter-drawio/internal/scatter"
)

const (
	DefaultHost  = "Electron"
	DefaultAgent = "scatter-drawio"
	DefaultType  = "device"

	titleY      = 20.0
	titleHeight = 40.0

	axisArrowOverhang = 20.0 // how far the axis arrows run past the plot area

	tickLength = 5.0

	xLabelOffsetY = 8.0
	xLabelWidth   = 40.0
	xLabelHeight  = 20.0
	yLabelOffsetX = 45.0
	yLabelWidth   = 40.0
	yLabelHeight  = 20.0

	markerSize = 12.0
)

const (
	styleTitle  = "text;html=1;strokeColor=none;fillColor=none;align=center;verticalAlign=middle;whiteSpace=wrap;rounded=0;fontSize=24;fontStyle=1;"
	styleAxis   = "endArrow=classic;html=1;strokeWidth=2;strokeColor=#000000;"
	styleTick   = "endArrow=none;html=1;strokeWidth=1;"
	styleXLabel = "text;html=1;align=center;verticalAlign=top;whiteSpace=wrap;rounded=0;"
	styleYLabel = "text;html=1;align=right;verticalAlign=middle;whiteSpace=wrap;rounded=0;"
	styleMarker = "ellipse;whiteSpace=nowrap;html=1;aspect=fixed;fillColor=#f8cecc;strokeColor=#b85450;"
)

var labelStyles = map[scatter.Placement]string{
	scatter.Bottom: "verticalLabelPosition=bottom;verticalAlign=top;align=center;",
	scatter.Top:    "verticalLabelPosition=top;verticalAlign=bottom;align=center;",
	scatter.Right:  "labelPosition=right;verticalLabelPosition=middle;align=left;",
	scatter.Left:   "labelPosition=left;verticalLabelPosition=middle;align=right;",
}

// MarkerStyle is the full style of a data point marker whose label sits at p.
func MarkerStyle(p scatter.Placement) string {
	return styleMarker + labelStyles[p]
}

// Assemble lays out a scatterplot of records on canvas c. bounds must be the
// bounds of records; generatedAt is stamped into the header.
func Assemble(records []scatter.Record, bounds scatter.Bounds, c scatter.Canvas, generatedAt time.Time) (*Document, error) {
	if len(records) == 0 {
		return nil, scatter.ErrEmptyInput
	}

	doc := NewDocument(Header{
		Host:     DefaultHost,
		Agent:    DefaultAgent,
		Type:     DefaultType,
		Modified: generatedAt.UTC(),
		Width:    c.Width,
		Height:   c.Height,
	})

	a := assembler{doc: doc, bounds: bounds, canvas: c}
	a.title()
	a.axes()
	a.ticks()
	a.points(records)
	if a.err != nil {
		return nil, a.err
	}
	return doc, nil
}

// assembler keeps the first Append error so the layout steps read linearly.
type assembler struct {
	doc    *Document
	bounds scatter.Bounds
	canvas scatter.Canvas
	err    error
}

func (a *assembler) add(e Element) {
	if a.err != nil {
		return
	}
	a.err = a.doc.Append(e)
}

// axisX is the pixel column of the vertical axis.
func (a *assembler) axisX() float64 {
	return float64(a.canvas.Padding - a.canvas.AxisOffset)
}

// axisY is the pixel row of the horizontal axis.
func (a *assembler) axisY() float64 {
	return float64(a.canvas.Padding) + a.canvas.GraphHeight() + float64(a.canvas.AxisOffset)
}

func (a *assembler) title() {
	a.add(Element{
		ID:       "chart-title",
		Value:    a.canvas.Title,
		Style:    styleTitle,
		Kind:     Vertex,
		Geometry: Rect{X: 0, Y: titleY, Width: float64(a.canvas.Width), Height: titleHeight},
	})
}

func (a *assembler) axes() {
	x0, y0 := a.axisX(), a.axisY()
	pad := float64(a.canvas.Padding)

	a.add(Element{
		ID:     "axis-x",
		Style:  styleAxis,
		Kind:   Edge,
		Source: Point{X: x0, Y: y0},
		Target: Point{X: pad + a.canvas.GraphWidth() + float64(a.canvas.AxisOffset) + axisArrowOverhang, Y: y0},
	})
	a.add(Element{
		ID:     "axis-y",
		Style:  styleAxis,
		Kind:   Edge,
		Source: Point{X: x0, Y: y0},
		Target: Point{X: x0, Y: pad - axisArrowOverhang},
	})
}

func (a *assembler) ticks() {
	x0, y0 := a.axisX(), a.axisY()
	xs := scatter.XTicks(a.bounds, a.canvas)
	ys := scatter.YTicks(a.bounds, a.canvas)

	for i := range xs {
		xt, yt := xs[i], ys[i]

		a.add(Element{
			ID:     fmt.Sprintf("xtick-%d", xt.Index),
			Style:  styleTick,
			Kind:   Edge,
			Source: Point{X: xt.Pixel, Y: y0},
			Target: Point{X: xt.Pixel, Y: y0 + tickLength},
		})
		a.add(Element{
			ID:       fmt.Sprintf("xlabel-%d", xt.Index),
			Value:    scatter.FormatNumber(xt.Value),
			Style:    styleXLabel,
			Kind:     Vertex,
			Geometry: Rect{X: xt.Pixel - xLabelWidth/2, Y: y0 + xLabelOffsetY, Width: xLabelWidth, Height: xLabelHeight},
		})

		a.add(Element{
			ID:     fmt.Sprintf("ytick-%d", yt.Index),
			Style:  styleTick,
			Kind:   Edge,
			Source: Point{X: x0, Y: yt.Pixel},
			Target: Point{X: x0 - tickLength, Y: yt.Pixel},
		})
		a.add(Element{
			ID:       fmt.Sprintf("ylabel-%d", yt.Index),
			Value:    scatter.FormatNumber(yt.Value),
			Style:    styleYLabel,
			Kind:     Vertex,
			Geometry: Rect{X: x0 - yLabelOffsetX, Y: yt.Pixel - yLabelHeight/2, Width: yLabelWidth, Height: yLabelHeight},
		})
	}
}

func (a *assembler) points(records []scatter.Record) {
	for i, r := range records {
		p := scatter.MapPoint(r, a.bounds, a.canvas)
		a.add(Element{
			ID:       fmt.Sprintf("pt-%d", i),
			Value:    r.Label,
			Style:    MarkerStyle(scatter.PlacementFor(i)),
			Kind:     Vertex,
			Geometry: Rect{X: p.X - markerSize/2, Y: p.Y - markerSize/2, Width: markerSize, Height: markerSize},
		})
	}
}
