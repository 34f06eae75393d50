package analyzer

import (
	"fmt"
)

type (
	// OversizedInputError is returned when a file exceeds the maximum size.
	OversizedInputError struct {
		Path  string
		Size  int64
		Limit int64
	}

	// FileError records the failure to analyze a single file.
	FileError struct {
		Path     string
		Category string
		Err      error
	}
)

func (e *OversizedInputError) Error() string {
	return fmt.Sprintf("file exceeds maximum allowed size (%d bytes > %d bytes)", e.Size, e.Limit)
}

func (e FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e FileError) Unwrap() error {
	return e.Err
}
