package observed

// PreListener is notified before a modification happens.
// Returning an error that matches ErrVetoed vetoes the modification; any other error
// aborts it and is returned to the caller.
type PreListener[E any] interface {
	Modifying(event ModificationEvent[E]) error
}

// PostListener is notified after a modification was committed.
type PostListener[E any] interface {
	Modified(event ModificationEvent[E]) error
}

// Listener is notified before and after each modification.
type Listener[E any] interface {
	PreListener[E]
	PostListener[E]
}

// PreListenerFunc adapts a func to PreListener.
type PreListenerFunc[E any] func(event ModificationEvent[E]) error

// Modifying calls f(event).
func (f PreListenerFunc[E]) Modifying(event ModificationEvent[E]) error {
	return f(event)
}

// PostListenerFunc adapts a func to PostListener.
type PostListenerFunc[E any] func(event ModificationEvent[E]) error

// Modified calls f(event).
func (f PostListenerFunc[E]) Modified(event ModificationEvent[E]) error {
	return f(event)
}
