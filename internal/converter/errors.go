package converter

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates a named input resolved to neither accepted extension.
var ErrFileNotFound = errors.New("file not found")

// ErrInsufficientRows indicates a sheet has no rows inside the requested range.
var ErrInsufficientRows = errors.New("not enough rows for the requested range")

// ErrNoRecords indicates a sheet had a header but every data row was empty.
var ErrNoRecords = errors.New("no records in range")

// ErrUnsupportedFormat indicates a file extension no decoder handles.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// FileError wraps a failure that affects a single input file.
type FileError struct {
	Path string
	Op   string // "decode", "write", "classify", "panic"
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
