// Package oteladapters provides OpenTelemetry implementations of the observability interfaces
// of package observed: MetricsCollector, TracingCollector and ContextualLogger.
//
// It lives in its own module so that users of observed collections do not pull in
// OpenTelemetry unless they want it.
//
// Usage:
//
//	handler, err := instrumented.NewHandler[string](
//		observed.NewStandardHandler[string](),
//		instrumented.WithMetrics[string](oteladapters.NewMetricsCollector(meterProvider.Meter("tags"))),
//		instrumented.WithTracing[string](oteladapters.NewTracingCollector(tracerProvider.Tracer("tags"))),
//		instrumented.WithContextualLogger[string](oteladapters.NewSlogBridgeLogger("tags")),
//	)
package oteladapters
