package drawio_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scatter-drawio/internal/drawio"
	"scatter-drawio/internal/scatter"
)

var generatedAt = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func sampleRecords() []scatter.Record {
	return []scatter.Record{
		{X: 0, Y: 0, Label: "A"},
		{X: 10, Y: 0, Label: "B"},
		{X: 5, Y: 10, Label: "C"},
	}
}

func assembleSample(t *testing.T, records []scatter.Record) *drawio.Document {
	t.Helper()
	b, err := scatter.ComputeBounds(records)
	require.NoError(t, err)
	doc, err := drawio.Assemble(records, b, scatter.DefaultCanvas(), generatedAt)
	require.NoError(t, err)
	return doc
}

func countPrefix(doc *drawio.Document, prefix string) int {
	n := 0
	for _, e := range doc.Elements() {
		if strings.HasPrefix(e.ID, prefix) {
			n++
		}
	}
	return n
}

func TestAssemble_ElementCounts(t *testing.T) {
	doc := assembleSample(t, sampleRecords())

	assert.Equal(t, 1, countPrefix(doc, "chart-title"))
	assert.Equal(t, 2, countPrefix(doc, "axis-"))
	assert.Equal(t, 6, countPrefix(doc, "xtick-"))
	assert.Equal(t, 6, countPrefix(doc, "xlabel-"))
	assert.Equal(t, 6, countPrefix(doc, "ytick-"))
	assert.Equal(t, 6, countPrefix(doc, "ylabel-"))
	assert.Equal(t, 3, countPrefix(doc, "pt-"))
	assert.Equal(t, 1+2+24+3, doc.Len())
}

func TestAssemble_Order(t *testing.T) {
	doc := assembleSample(t, sampleRecords())
	els := doc.Elements()

	assert.Equal(t, "chart-title", els[0].ID)
	assert.Equal(t, "axis-x", els[1].ID)
	assert.Equal(t, "axis-y", els[2].ID)
	assert.Equal(t, []string{"xtick-0", "xlabel-0", "ytick-0", "ylabel-0"},
		[]string{els[3].ID, els[4].ID, els[5].ID, els[6].ID})
	assert.Equal(t, "pt-0", els[len(els)-3].ID)
	assert.Equal(t, "pt-2", els[len(els)-1].ID)
}

func TestAssemble_UniqueIDs(t *testing.T) {
	records := make([]scatter.Record, 50)
	for i := range records {
		records[i] = scatter.Record{X: float64(i), Y: float64(i % 7)}
	}
	doc := assembleSample(t, records)

	seen := make(map[string]bool)
	for _, e := range doc.Elements() {
		require.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
	}
}

func TestAssemble_Geometry(t *testing.T) {
	doc := assembleSample(t, sampleRecords())

	title, ok := doc.Lookup("chart-title")
	require.True(t, ok)
	assert.Equal(t, scatter.DefaultTitle, title.Value)
	assert.Equal(t, drawio.Rect{X: 0, Y: 20, Width: 800, Height: 40}, title.Geometry)

	axisX, _ := doc.Lookup("axis-x")
	assert.Equal(t, drawio.Edge, axisX.Kind)
	assert.Equal(t, drawio.Point{X: 20, Y: 580}, axisX.Source)
	assert.Equal(t, drawio.Point{X: 800, Y: 580}, axisX.Target)

	axisY, _ := doc.Lookup("axis-y")
	assert.Equal(t, drawio.Point{X: 20, Y: 60}, axisY.Target)

	// A(0,0) bottom-left, B(10,0) bottom-right, C(5,10) top-center
	want := map[string]drawio.Point{
		"pt-0": {X: 80, Y: 520},
		"pt-1": {X: 720, Y: 520},
		"pt-2": {X: 400, Y: 80},
	}
	for id, center := range want {
		pt, ok := doc.Lookup(id)
		require.True(t, ok, id)
		assert.Equal(t, center, pt.Geometry.Center(), id)
		assert.Equal(t, 12.0, pt.Geometry.Width)
	}

	xl, _ := doc.Lookup("xlabel-2")
	assert.Equal(t, "4", xl.Value)
	yl, _ := doc.Lookup("ylabel-5")
	assert.Equal(t, "10", yl.Value)
	assert.Equal(t, 70.0, yl.Geometry.Y)
}

func TestAssemble_LabelPlacement(t *testing.T) {
	records := make([]scatter.Record, 5)
	for i := range records {
		records[i] = scatter.Record{X: float64(i), Y: float64(i)}
	}
	doc := assembleSample(t, records)

	pt0, _ := doc.Lookup("pt-0")
	pt1, _ := doc.Lookup("pt-1")
	pt4, _ := doc.Lookup("pt-4")
	assert.Equal(t, drawio.MarkerStyle(scatter.Bottom), pt0.Style)
	assert.Equal(t, drawio.MarkerStyle(scatter.Top), pt1.Style)
	assert.Equal(t, pt0.Style, pt4.Style)
	assert.Contains(t, pt0.Style, "verticalLabelPosition=bottom")
}

func TestAssemble_IdenticalY(t *testing.T) {
	records := []scatter.Record{{X: 1, Y: 3}, {X: 2, Y: 3}, {X: 9, Y: 3}}
	doc := assembleSample(t, records)

	for _, id := range []string{"pt-0", "pt-1", "pt-2"} {
		pt, _ := doc.Lookup(id)
		assert.Equal(t, 300.0, pt.Geometry.Center().Y, id)
	}
	for i := 0; i <= scatter.TickSteps; i++ {
		yl, _ := doc.Lookup(fmt.Sprintf("ylabel-%d", i))
		assert.Equal(t, "3", yl.Value)
	}
}

func TestAssemble_Empty(t *testing.T) {
	_, err := drawio.Assemble(nil, scatter.Bounds{}, scatter.DefaultCanvas(), generatedAt)
	if !errors.Is(err, scatter.ErrEmptyInput) {
		t.Fatalf("Assemble(nil) error = %v; want %v", err, scatter.ErrEmptyInput)
	}
}

func TestDocumentAppend_DuplicateID(t *testing.T) {
	doc := drawio.NewDocument(drawio.Header{})
	require.NoError(t, doc.Append(drawio.Element{ID: "pt-0"}))

	err := doc.Append(drawio.Element{ID: "pt-0"})
	assert.ErrorIs(t, err, drawio.ErrDuplicateID)
	assert.Error(t, doc.Append(drawio.Element{}))
	assert.Equal(t, 1, doc.Len())
}
