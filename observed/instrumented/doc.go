// Package instrumented provides a Handler decorator that adds logging, metrics and tracing
// to any observed.Handler.
//
// The decorator delegates every decision to the wrapped handler and reports what happened:
//   - a counter and a duration per pre hook, labelled with the operation and allowed/vetoed/error
//   - a counter per post hook, labelled with changed/unchanged/error, plus the collection size
//   - one span per hook
//   - log records through a Logger and/or a ContextualLogger
//
// Usage:
//
//	handler, _ := instrumented.NewHandler[int](
//		observed.NewStandardHandler[int](),
//		instrumented.WithMetrics[int](metricsCollector),
//		instrumented.WithTracing[int](tracingCollector),
//	)
//	coll, _ := observed.WrapWith[int](containers.NewList[int](), handler)
package instrumented
