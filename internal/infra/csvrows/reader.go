package csvrows

// Row-streaming reader for delimited text with a header row
// Rows come back as column name -> cell value, keyed by the header

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const utf8BOM = "\ufeff"

// ErrNoHeader is returned when the input has no header row at all.
var ErrNoHeader = errors.New("input has no header row")

// Reader yields rows of a delimited stream as maps keyed by header names.
type Reader struct {
	r      *csv.Reader
	header []string
}

// NewReader reads the header row from src. delimiter 0 means comma.
func NewReader(src io.Reader, delimiter rune) (*Reader, error) {
	if delimiter == 0 {
		delimiter = ','
	}
	if !validDelimiter(delimiter) {
		return nil, fmt.Errorf("invalid delimiter %q", delimiter)
	}

	cr := csv.NewReader(src)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	return &Reader{r: cr, header: header}, nil
}

// Header returns the column names in input order.
func (r *Reader) Header() []string {
	out := make([]string, len(r.header))
	copy(out, r.header)
	return out
}

// Next returns the next row, or io.EOF when the input is exhausted. Cells
// missing from short rows are absent from the map; extra cells are ignored.
func (r *Reader) Next() (map[string]string, error) {
	for {
		record, err := r.r.Read()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if isBlank(record) {
			continue
		}

		row := make(map[string]string, len(r.header))
		for i, name := range r.header {
			if i >= len(record) {
				break
			}
			if _, dup := row[name]; dup {
				continue
			}
			row[name] = record[i]
		}
		return row, nil
	}
}

// ReadAll drains the reader.
func (r *Reader) ReadAll() ([]map[string]string, error) {
	var rows []map[string]string
	for {
		row, err := r.Next()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
}

// ParseDelimiter turns a flag value into a delimiter rune. "\t" and "tab"
// name the tab character.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return ',', nil
	case `\t`, "tab":
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	d, _ := utf8.DecodeRuneInString(s)
	if !validDelimiter(d) {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	return d, nil
}

func validDelimiter(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}

func isBlank(record []string) bool {
	return len(record) == 1 && strings.TrimSpace(record[0]) == ""
}
