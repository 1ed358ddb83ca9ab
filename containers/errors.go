package containers

import "errors"

var (
	// ErrCapacityExceeded is returned when a modification would grow a bounded List beyond its capacity.
	ErrCapacityExceeded = errors.New("container capacity exceeded")

	// ErrInvalidCapacity is returned when a bounded List is created with a capacity below one.
	ErrInvalidCapacity = errors.New("capacity must be at least one")
)
