package observed

// Option defines a functional option for configuring a Collection.
type Option[E any] func(*Collection[E]) error

// WithRegistry sets the Registry used to resolve the listener passed to WrapWith.
// Without this option the process-wide DefaultRegistry for E is used.
func WithRegistry[E any](registry *Registry[E]) Option[E] {
	return func(c *Collection[E]) error {
		if registry == nil {
			return ErrInvalidArgument
		}

		c.registry = registry

		return nil
	}
}

// WithLogger sets the logger for the Collection.
// The logger will receive messages at different levels:
//
// Debug level: vetoed modifications
// Error level: failing containers and failing hooks.
func WithLogger[E any](logger Logger) Option[E] {
	return func(c *Collection[E]) error {
		c.logger = logger
		return nil
	}
}
