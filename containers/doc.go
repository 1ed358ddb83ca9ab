// Package containers provides in-memory implementations of observed.Container.
//
// List keeps elements in insertion order and allows duplicates; a bounded List rejects
// growth beyond its capacity with ErrCapacityExceeded. Set keeps insertion order and
// rejects duplicates by reporting no change.
//
// None of the containers are safe for concurrent use.
package containers
