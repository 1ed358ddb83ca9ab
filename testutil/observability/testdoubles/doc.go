// Package testdoubles provides test doubles (spies) for the observability interfaces of package observed.
//
// This package contains spy implementations for:
//   - MetricsCollectorSpy: captures metrics recording calls for verification
//   - TracingCollectorSpy: captures spans with their start and finish attributes
//   - ContextualLoggerSpy: captures context-aware logging calls
//   - LogHandlerSpy: a slog.Handler capturing records, for *slog.Logger based Logger instances
//
// These test doubles enable testing of observability instrumentation
// without requiring actual telemetry backends.
package testdoubles
