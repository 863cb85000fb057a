package scatter

import "errors"

// ErrEmptyInput is returned when no row of the input produced a usable record.
var ErrEmptyInput = errors.New("no valid data found in input")
