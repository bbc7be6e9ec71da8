package grid

import (
	"errors"
	"fmt"
)

// ErrNotNumeric is wrapped by every extraction failure caused by a cell
// that does not hold a number.
var ErrNotNumeric = errors.New("grid content must be numeric")

// CellError locates the first offending cell of a failed extraction. Row is
// zero-based; the message shows it one-based, as the table does.
type CellError struct {
	Row    int
	Column string
	Text   string
}

func (e *CellError) Error() string {
	return fmt.Sprintf("%v: row %d, column %q: %q", ErrNotNumeric, e.Row+1, e.Column, e.Text)
}

func (e *CellError) Unwrap() error { return ErrNotNumeric }
