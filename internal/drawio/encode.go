package drawio

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"time"
)

const (
	diagramID   = "scatterplot"
	diagramName = "Page-1"

	rootCellID  = "0"
	layerCellID = "1"

	pageWidth  = 827
	pageHeight = 1169
	gridSize   = 10

	// edge geometry placeholders, ignored by draw.io once source/target points are set
	edgeBoxSize = 50
)

// Coord is a pixel coordinate written as the shortest decimal that round
// trips, never in exponent form.
type Coord float64

func (c Coord) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	return xml.Attr{Name: name, Value: strconv.FormatFloat(float64(c), 'f', -1, 64)}, nil
}

type mxFile struct {
	XMLName  xml.Name  `xml:"mxfile"`
	Host     string    `xml:"host,attr"`
	Modified string    `xml:"modified,attr"`
	Agent    string    `xml:"agent,attr"`
	Type     string    `xml:"type,attr"`
	Diagram  mxDiagram `xml:"diagram"`
}

type mxDiagram struct {
	ID    string       `xml:"id,attr"`
	Name  string       `xml:"name,attr"`
	Model mxGraphModel `xml:"mxGraphModel"`
}

type mxGraphModel struct {
	DX         int    `xml:"dx,attr"`
	DY         int    `xml:"dy,attr"`
	Grid       int    `xml:"grid,attr"`
	GridSize   int    `xml:"gridSize,attr"`
	Guides     int    `xml:"guides,attr"`
	Tooltips   int    `xml:"tooltips,attr"`
	Connect    int    `xml:"connect,attr"`
	Arrows     int    `xml:"arrows,attr"`
	Fold       int    `xml:"fold,attr"`
	Page       int    `xml:"page,attr"`
	PageScale  int    `xml:"pageScale,attr"`
	PageWidth  int    `xml:"pageWidth,attr"`
	PageHeight int    `xml:"pageHeight,attr"`
	Math       int    `xml:"math,attr"`
	Shadow     int    `xml:"shadow,attr"`
	Root       mxRoot `xml:"root"`
}

type mxRoot struct {
	Cells []mxCell `xml:"mxCell"`
}

type mxCell struct {
	ID       string      `xml:"id,attr"`
	Value    *string     `xml:"value,attr,omitempty"`
	Style    string      `xml:"style,attr,omitempty"`
	Vertex   string      `xml:"vertex,attr,omitempty"`
	Edge     string      `xml:"edge,attr,omitempty"`
	Parent   string      `xml:"parent,attr,omitempty"`
	Geometry *mxGeometry `xml:"mxGeometry"`
}

type mxGeometry struct {
	X        *Coord    `xml:"x,attr,omitempty"`
	Y        *Coord    `xml:"y,attr,omitempty"`
	Width    Coord     `xml:"width,attr"`
	Height   Coord     `xml:"height,attr"`
	Relative string    `xml:"relative,attr,omitempty"`
	As       string    `xml:"as,attr"`
	Points   []mxPoint `xml:"mxPoint"`
}

type mxPoint struct {
	X  Coord  `xml:"x,attr"`
	Y  Coord  `xml:"y,attr"`
	As string `xml:"as,attr"`
}

// Encode writes d as an indented mxfile document.
func Encode(w io.Writer, d *Document) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(toMxFile(d)); err != nil {
		return fmt.Errorf("failed to encode diagram: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush diagram: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Marshal returns the encoded document.
func Marshal(d *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toMxFile(d *Document) mxFile {
	cells := make([]mxCell, 0, d.Len()+2)
	cells = append(cells,
		mxCell{ID: rootCellID},
		mxCell{ID: layerCellID, Parent: rootCellID},
	)
	for _, e := range d.elements {
		cells = append(cells, toMxCell(e))
	}

	return mxFile{
		Host:     d.Header.Host,
		Modified: d.Header.Modified.UTC().Format(time.RFC3339Nano),
		Agent:    d.Header.Agent,
		Type:     d.Header.Type,
		Diagram: mxDiagram{
			ID:   diagramID,
			Name: diagramName,
			Model: mxGraphModel{
				DX:         d.Header.Width,
				DY:         d.Header.Height,
				Grid:       1,
				GridSize:   gridSize,
				Guides:     1,
				Tooltips:   1,
				Connect:    1,
				Arrows:     1,
				Fold:       1,
				Page:       1,
				PageScale:  1,
				PageWidth:  pageWidth,
				PageHeight: pageHeight,
				Root:       mxRoot{Cells: cells},
			},
		},
	}
}

func toMxCell(e Element) mxCell {
	value := e.Value
	cell := mxCell{
		ID:     e.ID,
		Value:  &value,
		Style:  e.Style,
		Parent: layerCellID,
	}

	switch e.Kind {
	case Edge:
		cell.Edge = "1"
		cell.Geometry = &mxGeometry{
			Width:    edgeBoxSize,
			Height:   edgeBoxSize,
			Relative: "1",
			As:       "geometry",
			Points: []mxPoint{
				{X: Coord(e.Source.X), Y: Coord(e.Source.Y), As: "sourcePoint"},
				{X: Coord(e.Target.X), Y: Coord(e.Target.Y), As: "targetPoint"},
			},
		}
	default:
		x, y := Coord(e.Geometry.X), Coord(e.Geometry.Y)
		cell.Vertex = "1"
		cell.Geometry = &mxGeometry{
			X:      &x,
			Y:      &y,
			Width:  Coord(e.Geometry.Width),
			Height: Coord(e.Geometry.Height),
			As:     "geometry",
		}
	}
	return cell
}
