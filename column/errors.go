package column

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded is returned when a row index with a fixed upper
	// bound is asked to track a row beyond that bound.
	ErrCapacityExceeded = errors.New("column: row index capacity exceeded")
)

// ErrRowAccessUnsupported indicates a column kind that cannot participate in
// a row index because it does not store cells.
type ErrRowAccessUnsupported struct {
	Kind Kind
}

func (e *ErrRowAccessUnsupported) Error() string {
	return fmt.Sprintf("column: kind %s does not support row access", e.Kind)
}
