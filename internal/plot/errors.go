package plot

import (
	"errors"
	"fmt"
)

var (
	// ErrNotNumeric indicates a plotted field holds non-numeric values.
	ErrNotNumeric = errors.New("field is not numeric")
	// ErrNoPoints indicates no row has both coordinates present.
	ErrNoPoints = errors.New("no rows with both values present")
)

// FieldNotFoundError is returned when a requested field is absent from the
// dataset.
type FieldNotFoundError struct {
	Field string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("field %q not found in dataset", e.Field)
}
