package pipeline

import (
	"errors"
	"fmt"
)

// ErrEmptyReload is returned by Handle.Reload when the new source loads but
// keeps no rows while a non-empty snapshot is being served.
var ErrEmptyReload = errors.New("reload produced an empty table")

// LoadError wraps a fatal load failure with the source it came from.
// Row-level problems never produce a LoadError; they are counted instead.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %s", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// RowWarning describes one dropped row. Warnings are logged as they occur and
// aggregated into the load summary.
type RowWarning struct {
	Line   int64
	Reason string
}
