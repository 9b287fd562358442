package topogo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/topogo/filtration"
	"github.com/hupe1980/topogo/matrix"
)

var (
	// ErrInvalidInput is returned when an inserted record is malformed.
	// The underlying cause can be accessed via errors.Unwrap.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotComputed is returned when pairs or cycles are requested before
	// Compute has run.
	ErrNotComputed = errors.New("persistence has not been computed")

	// ErrVineyardsDisabled is returned when Transpose is called on an engine
	// built without Vineyards().
	ErrVineyardsDisabled = errors.New("vineyards are not enabled")

	// ErrCyclesUnavailable is returned when representative cycles are
	// requested from a matrix species that does not retain them.
	ErrCyclesUnavailable = errors.New("matrix species does not retain representative cycles")

	// ErrInvalidConfig is returned by Build when the requested configuration
	// is inconsistent.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ErrUnknownFace indicates a boundary face identifier that has not been
// inserted before the simplex referencing it.
type ErrUnknownFace struct {
	ID   uint64
	Face uint64
}

func (e *ErrUnknownFace) Error() string {
	return fmt.Sprintf("simplex %d references unknown face %d", e.ID, e.Face)
}

// ErrDuplicateID indicates a simplex identifier that was inserted twice.
type ErrDuplicateID struct {
	ID uint64
}

func (e *ErrDuplicateID) Error() string {
	return fmt.Sprintf("simplex %d already inserted", e.ID)
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Malformed-input unification.
	var rec *filtration.ErrInvalidRecord
	if errors.As(err, &rec) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	var ooo *matrix.ErrOutOfOrderBoundary
	if errors.As(err, &ooo) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	var nm *filtration.ErrNonMonotone
	if errors.As(err, &nm) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	var face *ErrUnknownFace
	if errors.As(err, &face) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	var dup *ErrDuplicateID
	if errors.As(err, &dup) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, matrix.ErrZeroCoefficient) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return err
}
