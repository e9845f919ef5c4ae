package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound indicates the input file does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrUnreadable indicates the file exists but could not be read.
	ErrUnreadable = errors.New("file not readable")
	// ErrInvalidFormat indicates the file is not a valid spreadsheet.
	ErrInvalidFormat = errors.New("invalid spreadsheet format")
	// ErrUnsupportedFormat indicates no reader handles the file extension.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptySheet indicates the first sheet has no header or no data rows.
	ErrEmptySheet = errors.New("sheet has no data")
)

// DataAccessError reports a failure to turn a file into a Dataset.
// It is always recoverable: the caller can pick another file.
type DataAccessError struct {
	Path string
	Op   string // "stat", "open", "read", "parse"
	Err  error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

func accessError(path, op string, err error) *DataAccessError {
	return &DataAccessError{Path: path, Op: op, Err: err}
}
