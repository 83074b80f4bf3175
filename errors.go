package fixedvec

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded is returned when a fallible mutator would need more
	// free slots than the vector has remaining.
	ErrCapacityExceeded = errors.New("fixedvec: capacity exceeded")
)

// CapacityError reports a rejected TryPush or TryInsert and carries the
// rejected item back to the caller, so no value is ever silently discarded
// on a failed mutation.
//
// Test for the condition with errors.Is(err, ErrCapacityExceeded); recover
// the item with errors.As:
//
//	var ce *fixedvec.CapacityError[string]
//	if errors.As(err, &ce) {
//	    retryElsewhere(ce.Item)
//	}
type CapacityError[T any] struct {
	Item T
}

func (e *CapacityError[T]) Error() string {
	return "fixedvec: insufficient capacity"
}

func (e *CapacityError[T]) Unwrap() error { return ErrCapacityExceeded }

// panicOutOfBounds reports a fatal index error. An out-of-bounds index is a
// caller programming error, not a data condition, so it is never surfaced
// as a recoverable error value.
func panicOutOfBounds(method string, index, length int) {
	panic(fmt.Sprintf("fixedvec: %s: index %d out of bounds in vector of length %d", method, index, length))
}

func panicOpenDrain(method string) {
	panic(fmt.Sprintf("fixedvec: %s: vector has an open Drain", method))
}
