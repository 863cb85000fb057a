package scatter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scatter-drawio/internal/scatter"
)

func TestBindColumns(t *testing.T) {
	cases := []struct {
		name   string
		header []string
		want   scatter.ColumnBinding
	}{
		{"Named", []string{"label", "y", "x"}, scatter.ColumnBinding{X: "x", Y: "y", Label: "label", HasLabel: true}},
		{"Positional", []string{"a", "b", "c", "d"}, scatter.ColumnBinding{X: "a", Y: "b", Label: "c", HasLabel: true}},
		{"NoLabel", []string{"a", "b"}, scatter.ColumnBinding{X: "a", Y: "b"}},
		{"Mixed", []string{"name", "x", "weight"}, scatter.ColumnBinding{X: "x", Y: "x", Label: "weight", HasLabel: true}},
		{"CaseSensitive", []string{"X", "Y", "Label"}, scatter.ColumnBinding{X: "X", Y: "Y", Label: "Label", HasLabel: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, scatter.BindColumns(tc.header))
		})
	}
}

func TestParseNumber(t *testing.T) {
	accepted := map[string]float64{
		"3.14":     3.14,
		"3.14abc":  3.14,
		"  7":      7,
		"-2.5e1x":  -25,
		"+4":       4,
		".5":       0.5,
		"10px":     10,
		"\u00a07":  7,
		"\u2003-1": -1,
		"\t\n 2x":  2,
	}
	for in, want := range accepted {
		got, ok := scatter.ParseNumber(in)
		require.True(t, ok, "ParseNumber(%q) rejected", in)
		assert.InDelta(t, want, got, 1e-12, "ParseNumber(%q)", in)
	}

	for _, in := range []string{"", "   ", "abc", "NaN", "Infinity", "-", "1e999", "x12"} {
		_, ok := scatter.ParseNumber(in)
		assert.False(t, ok, "ParseNumber(%q) should be rejected", in)
	}
}

func TestExtract(t *testing.T) {
	b := scatter.BindColumns([]string{"x", "y", "label"})

	rec, ok := scatter.Extract(map[string]string{"x": "1", "y": "2.5", "label": "A"}, b)
	require.True(t, ok)
	assert.Equal(t, scatter.Record{X: 1, Y: 2.5, Label: "A"}, rec)

	_, ok = scatter.Extract(map[string]string{"x": "n/a", "y": "2"}, b)
	assert.False(t, ok)

	_, ok = scatter.Extract(map[string]string{"x": "1"}, b)
	assert.False(t, ok, "missing y must reject the row")

	rec, ok = scatter.Extract(map[string]string{"x": "1", "y": "2"}, b)
	require.True(t, ok)
	assert.Empty(t, rec.Label)
}

func TestExtract_NoLabelColumn(t *testing.T) {
	b := scatter.BindColumns([]string{"a", "b"})
	rec, ok := scatter.Extract(map[string]string{"a": "4", "b": "5"}, b)
	require.True(t, ok)
	assert.Equal(t, scatter.Record{X: 4, Y: 5}, rec)
}

func TestExtractAll_DropsOnlyInvalidRows(t *testing.T) {
	b := scatter.BindColumns([]string{"x", "y", "label"})
	rows := []map[string]string{
		{"x": "0", "y": "0", "label": "A"},
		{"x": "oops", "y": "1", "label": "B"},
		{"x": "10", "y": "0", "label": "C"},
		{"x": "5", "y": "", "label": "D"},
	}

	records, dropped := scatter.ExtractAll(rows, b)
	assert.Equal(t, 2, dropped)
	require.Len(t, records, 2)
	assert.Equal(t, "A", records[0].Label)
	assert.Equal(t, "C", records[1].Label)
	assert.LessOrEqual(t, len(records), len(rows))

	valid := []map[string]string{rows[0], rows[2]}
	records, dropped = scatter.ExtractAll(valid, b)
	assert.Zero(t, dropped)
	assert.Len(t, records, 2)
}
