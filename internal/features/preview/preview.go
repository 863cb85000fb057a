package preview

// PNG preview of an assembled diagram
// Draws the same elements draw.io would show: edges as lines, ellipses as
// markers with their labels, text cells as aligned strings

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"strconv"

	"github.com/fogleman/gg"
	"go.uber.org/zap"

	"scatter-drawio/internal/drawio"
	"scatter-drawio/internal/infra/fs"
	logging "scatter-drawio/internal/infra/log"
)

const (
	defaultFontSize = 12.0
	labelGap        = 4.0
	arrowLength     = 10.0
	arrowHalfWidth  = 4.0

	backgroundColor  = "#ffffff"
	defaultStroke    = "#000000"
	defaultFill      = "#ffffff"
	defaultTextColor = "#000000"
)

// Options tunes the raster output.
type Options struct {
	Scale    float64 // pixel density multiplier, 1 when zero
	FontPath string  // TrueType font for labels; the built-in face is used when empty or unloadable
}

// Render rasterizes doc.
func Render(doc *drawio.Document, opts Options) (image.Image, error) {
	dc, err := draw(doc, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// EncodePNG renders doc and returns it PNG-encoded.
func EncodePNG(doc *drawio.Document, opts Options) ([]byte, error) {
	img, err := Render(doc, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes an encoded preview to path atomically.
func Save(path string, data []byte) error {
	if err := fs.SaveFileAtomic(path, data); err != nil {
		return fmt.Errorf("failed to save preview: %w", err)
	}
	logging.LogInfo("Preview saved", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}

func draw(doc *drawio.Document, opts Options) (*gg.Context, error) {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(float64(doc.Header.Width) * scale))
	h := int(math.Ceil(float64(doc.Header.Height) * scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid preview size %dx%d", w, h)
	}

	dc := gg.NewContext(w, h)
	dc.SetHexColor(backgroundColor)
	dc.Clear()
	dc.Scale(scale, scale)

	r := renderer{dc: dc, fontPath: opts.FontPath}
	for _, e := range doc.Elements() {
		st := drawio.ParseStyle(e.Style)
		if e.Kind == drawio.Edge {
			r.edge(e, st)
			continue
		}
		r.vertex(e, st)
	}
	return dc, nil
}

type renderer struct {
	dc       *gg.Context
	fontPath string
	fontSize float64
}

func (r *renderer) setFontSize(size float64) {
	if r.fontPath == "" || size == r.fontSize {
		return
	}
	if err := r.dc.LoadFontFace(r.fontPath, size); err != nil {
		logging.LogWarn("Failed to load preview font, using built-in face",
			zap.String("path", r.fontPath), zap.Error(err))
		r.fontPath = ""
		return
	}
	r.fontSize = size
}

func (r *renderer) edge(e drawio.Element, st drawio.Style) {
	dc := r.dc
	dc.SetHexColor(st.Get("strokeColor", defaultStroke))
	dc.SetLineWidth(styleFloat(st, "strokeWidth", 1))
	dc.DrawLine(e.Source.X, e.Source.Y, e.Target.X, e.Target.Y)
	dc.Stroke()

	if st.Get("endArrow", "classic") == "none" {
		return
	}
	angle := math.Atan2(e.Target.Y-e.Source.Y, e.Target.X-e.Source.X)
	dc.Push()
	dc.Translate(e.Target.X, e.Target.Y)
	dc.Rotate(angle)
	dc.MoveTo(0, 0)
	dc.LineTo(-arrowLength, -arrowHalfWidth)
	dc.LineTo(-arrowLength, arrowHalfWidth)
	dc.ClosePath()
	dc.Fill()
	dc.Pop()
}

func (r *renderer) vertex(e drawio.Element, st drawio.Style) {
	g := e.Geometry
	if st[drawio.ShapeKey] == "ellipse" {
		r.dc.DrawEllipse(g.X+g.Width/2, g.Y+g.Height/2, g.Width/2, g.Height/2)
		r.dc.SetHexColor(st.Get("fillColor", defaultFill))
		r.dc.FillPreserve()
		r.dc.SetHexColor(st.Get("strokeColor", defaultStroke))
		r.dc.SetLineWidth(1)
		r.dc.Stroke()
	}
	if e.Value == "" {
		return
	}

	r.setFontSize(styleFloat(st, "fontSize", defaultFontSize))
	r.dc.SetHexColor(st.Get("fontColor", defaultTextColor))
	x, y, ax, ay := labelAnchor(g, st)
	r.dc.DrawStringAnchored(e.Value, x, y, ax, ay)
}

// labelAnchor resolves where a cell's text goes. labelPosition and
// verticalLabelPosition move the label outside the shape; align and
// verticalAlign place it inside the resulting box.
func labelAnchor(g drawio.Rect, st drawio.Style) (x, y, ax, ay float64) {
	c := g.Center()
	x, y = c.X, c.Y
	ax, ay = 0.5, 0.5

	switch st.Get("labelPosition", "center") {
	case "right":
		return g.X + g.Width + labelGap, c.Y, 0, 0.5
	case "left":
		return g.X - labelGap, c.Y, 1, 0.5
	}
	switch st.Get("verticalLabelPosition", "middle") {
	case "bottom":
		return c.X, g.Y + g.Height + labelGap, 0.5, 1
	case "top":
		return c.X, g.Y - labelGap, 0.5, 0
	}

	switch st.Get("align", "center") {
	case "left":
		x, ax = g.X, 0
	case "right":
		x, ax = g.X+g.Width, 1
	}
	switch st.Get("verticalAlign", "middle") {
	case "top":
		y, ay = g.Y, 1
	case "bottom":
		y, ay = g.Y+g.Height, 0
	}
	return x, y, ax, ay
}

func styleFloat(st drawio.Style, key string, def float64) float64 {
	v, ok := st[key]
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}
