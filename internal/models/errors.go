package models

import (
	"fmt"
	"strings"
)

// DataLoadError reports that the dataset endpoint could not be reached or
// did not return tabular data.
type DataLoadError struct {
	URL string
	Err error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("failed to load dataset from %s: %v", e.URL, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// DataFormatError reports a missing or unparseable date column.
type DataFormatError struct {
	Reason string
	Line   int // 1-based CSV line, 0 when not line specific
}

func (e *DataFormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid dataset format at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("invalid dataset format: %s", e.Reason)
}

// UnknownColumnError reports configured column names absent from the dataset.
type UnknownColumnError struct {
	Columns []string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown dataset columns: %s", strings.Join(e.Columns, ", "))
}
