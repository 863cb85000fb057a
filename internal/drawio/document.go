package drawio

import (
	"errors"
	"fmt"
	"time"
)

// ErrDuplicateID is returned by Append when an element id is already taken.
var ErrDuplicateID = errors.New("duplicate element id")

// Kind tells vertices (boxes, text, markers) from edges (lines).
type Kind int

const (
	Vertex Kind = iota
	Edge
)

func (k Kind) String() string {
	if k == Edge {
		return "edge"
	}
	return "vertex"
}

// Point is a pixel position on the page.
type Point struct {
	X, Y float64
}

// Rect is a vertex geometry, X and Y being the top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Center returns the middle of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Element is one drawable cell. Vertices use Geometry; edges use Source and
// Target.
type Element struct {
	ID       string
	Value    string
	Style    string
	Kind     Kind
	Geometry Rect
	Source   Point
	Target   Point
}

// Header carries the envelope metadata written around the diagram.
type Header struct {
	Host     string
	Agent    string
	Type     string
	Modified time.Time
	Width    int
	Height   int
}

// Document is an append-only, ordered set of elements with unique ids.
type Document struct {
	Header   Header
	elements []Element
	ids      map[string]int
}

// NewDocument creates an empty document with the given header.
func NewDocument(h Header) *Document {
	return &Document{
		Header: h,
		ids:    make(map[string]int),
	}
}

// Append adds e at the end of the document.
func (d *Document) Append(e Element) error {
	if e.ID == "" {
		return fmt.Errorf("element without id (value %q)", e.Value)
	}
	if _, ok := d.ids[e.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, e.ID)
	}
	d.ids[e.ID] = len(d.elements)
	d.elements = append(d.elements, e)
	return nil
}

// Elements returns a copy of the elements in drawing order.
func (d *Document) Elements() []Element {
	out := make([]Element, len(d.elements))
	copy(out, d.elements)
	return out
}

// Lookup returns the element with the given id.
func (d *Document) Lookup(id string) (Element, bool) {
	i, ok := d.ids[id]
	if !ok {
		return Element{}, false
	}
	return d.elements[i], true
}

// Len is the number of elements.
func (d *Document) Len() int {
	return len(d.elements)
}
