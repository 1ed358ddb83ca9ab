package instrumented

import (
	"context"

	"github.com/AntonStoeckl/observed-collections-go/observed"
)

// Option defines a functional option for configuring Handler.
type Option[E any] func(*Handler[E]) error

// WithMetrics sets the metrics collector for the Handler.
func WithMetrics[E any](collector observed.MetricsCollector) Option[E] {
	return func(h *Handler[E]) error {
		h.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Handler.
func WithTracing[E any](collector observed.TracingCollector) Option[E] {
	return func(h *Handler[E]) error {
		h.tracingCollector = collector
		return nil
	}
}

// WithLogger sets the basic logger for the Handler.
//
// Debug level: allowed modifications and notifications
// Info level: vetoed modifications
// Error level: failing hooks.
func WithLogger[E any](logger observed.Logger) Option[E] {
	return func(h *Handler[E]) error {
		h.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Handler.
// It receives the same messages as the basic logger, with the span context attached.
func WithContextualLogger[E any](logger observed.ContextualLogger) Option[E] {
	return func(h *Handler[E]) error {
		h.contextualLogger = logger
		return nil
	}
}

// WithContext sets the base context spans are started from.
// Hooks have no context of their own, so this is the only way to parent their spans.
func WithContext[E any](ctx context.Context) Option[E] {
	return func(h *Handler[E]) error {
		if ctx == nil {
			return observed.ErrInvalidArgument
		}

		h.ctx = ctx

		return nil
	}
}
