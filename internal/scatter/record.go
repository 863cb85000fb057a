package scatter

// Record extraction from raw delimited rows
// Resolves the x/y/label columns once per header and parses numbers
// with leading-prefix semantics ("3.14abc" -> 3.14)

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/tdewolff/parse/v2"
)

const (
	ColumnX     = "x"
	ColumnY     = "y"
	ColumnLabel = "label"
)

// Record is one accepted data point.
type Record struct {
	X     float64
	Y     float64
	Label string
}

// ColumnBinding names the header columns holding x, y and the label.
type ColumnBinding struct {
	X        string
	Y        string
	Label    string
	HasLabel bool
}

// BindColumns picks the named columns when present and falls back to header
// position (first, second, third) otherwise.
func BindColumns(header []string) ColumnBinding {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}

	pick := func(name string, pos int) (string, bool) {
		if present[name] {
			return name, true
		}
		if pos < len(header) {
			return header[pos], true
		}
		return "", false
	}

	var b ColumnBinding
	b.X, _ = pick(ColumnX, 0)
	b.Y, _ = pick(ColumnY, 1)
	b.Label, b.HasLabel = pick(ColumnLabel, 2)
	return b
}

// Extract turns one row into a Record. ok is false when x or y is missing or
// does not parse to a finite number.
func Extract(row map[string]string, b ColumnBinding) (rec Record, ok bool) {
	x, ok := ParseNumber(row[b.X])
	if !ok {
		return Record{}, false
	}
	y, ok := ParseNumber(row[b.Y])
	if !ok {
		return Record{}, false
	}

	var label string
	if b.HasLabel {
		label = row[b.Label]
	}
	return Record{X: x, Y: y, Label: label}, true
}

// ExtractAll runs Extract over rows and reports how many were dropped.
func ExtractAll(rows []map[string]string, b ColumnBinding) ([]Record, int) {
	records := make([]Record, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		rec, ok := Extract(row, b)
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	return records, dropped
}

// ParseNumber parses the longest leading decimal number of s, ignoring leading
// whitespace and any trailing garbage. Non-finite results are rejected.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if s == "" {
		return 0, false
	}

	n, _ := parse.Dimension([]byte(s))
	if n == 0 {
		return 0, false
	}

	f, err := strconv.ParseFloat(s[:n], 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
