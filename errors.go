package slotpool

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOption is the parent of every configuration error returned by New.
	ErrInvalidOption = errors.New("invalid option")

	// ErrNilAccessor is returned by New when no accessor is supplied.
	ErrNilAccessor = errors.New("accessor must not be nil")

	// ErrUnownedHandle is returned when releasing a handle that this pool does
	// not own: a nil handle, a handle from another pool, or a handle whose slot
	// was discarded by compaction.
	ErrUnownedHandle = errors.New("unowned handle")

	// ErrNotCheckedOut is returned when releasing a handle that is already free.
	ErrNotCheckedOut = errors.New("handle is not checked out")

	// ErrWrongStrategy is returned when a prune entry point is used under a
	// prune strategy it does not belong to.
	ErrWrongStrategy = errors.New("wrong prune strategy")

	// ErrPoolExhausted is returned by Checkout when every slot is in use and
	// the pool cannot grow, either because it is at its maximum size or
	// because its resource controller has no slots left to grant.
	ErrPoolExhausted = errors.New("pool exhausted")

	// ErrClosed is returned by operations on a closed pool.
	ErrClosed = errors.New("pool closed")
)

// ErrInvalidConfig describes a rejected configuration value.
//
// errors.Is(err, ErrInvalidOption) reports true for every ErrInvalidConfig.
type ErrInvalidConfig struct {
	Field  string
	Value  any
	Reason string
}

func (e *ErrInvalidConfig) Error() string {
	return fmt.Sprintf("%s: %s = %v: %s", ErrInvalidOption, e.Field, e.Value, e.Reason)
}

func (e *ErrInvalidConfig) Unwrap() error { return ErrInvalidOption }

func invalid(field string, value any, reason string) error {
	return &ErrInvalidConfig{Field: field, Value: value, Reason: reason}
}
