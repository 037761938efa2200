package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn is returned when a required price column is absent.
	ErrMissingColumn = errors.New("missing required column")
	// ErrMalformed is returned for rows or features that cannot be parsed.
	ErrMalformed = errors.New("malformed record")
)

// DataLoadError reports that a dataset source could not be read or parsed.
// Loading is all-or-nothing: no partial data accompanies this error.
type DataLoadError struct {
	Source string
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }
