package exsplit

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// ErrFileLoad indicates the input workbook or the requested sheet could not be read.
var ErrFileLoad = errors.Base("cannot load workbook")

// ErrInvalidInput indicates a condition was rejected when it was created.
var ErrInvalidInput = errors.Base("invalid condition input")

// ErrEmptyResult indicates no condition produced any rows. It is informational:
// nothing was written.
var ErrEmptyResult = errors.Base("no rows matched any condition")

// ErrWrite indicates an output file could not be written.
var ErrWrite = errors.Base("cannot write output")

// ErrNoConditions indicates a split was requested with an empty condition list.
var ErrNoConditions = errors.Base("no conditions to apply")

// FileLoadError represents a failure to read an input workbook.
type FileLoadError struct {
	Path  string
	Sheet string
	Err   error
}

func (e *FileLoadError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("%s: %q (sheet %q): %v", ErrFileLoad, e.Path, e.Sheet, e.Err)
	}
	return fmt.Sprintf("%s: %q: %v", ErrFileLoad, e.Path, e.Err)
}

func (e *FileLoadError) Unwrap() []error {
	return []error{ErrFileLoad, e.Err}
}

// NewFileLoadError creates a new FileLoadError.
func NewFileLoadError(path, sheet string, err error) *FileLoadError {
	return &FileLoadError{
		Path:  path,
		Sheet: sheet,
		Err:   err,
	}
}

// InvalidInputError represents a rejected condition field.
type InvalidInputError struct {
	Field  string // "column", "output", "value", "value2", "operator", "text", "pattern", "kind"
	Reason string
	Err    error
}

func (e *InvalidInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", ErrInvalidInput, e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput, e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidInput}
	}
	return []error{ErrInvalidInput, e.Err}
}

func invalidInput(field, reason string, err error) *InvalidInputError {
	return &InvalidInputError{Field: field, Reason: reason, Err: err}
}

// WriteError represents an I/O failure while writing output.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %q: %v", ErrWrite, e.Path, e.Err)
}

func (e *WriteError) Unwrap() []error {
	return []error{ErrWrite, e.Err}
}

// NewWriteError creates a new WriteError.
func NewWriteError(path string, err error) *WriteError {
	return &WriteError{
		Path: path,
		Err:  err,
	}
}
