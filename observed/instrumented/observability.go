package instrumented

import (
	"context"
	"time"

	"github.com/AntonStoeckl/observed-collections-go/observed"
)

// recordPre records the decision counter and the decision duration.
func (h *Handler[E]) recordPre(ctx context.Context, operation, status string, duration time.Duration) {
	if h.metricsCollector == nil {
		return
	}

	labels := map[string]string{labelOperation: operation, labelStatus: status}

	// Use context-aware methods if available
	if contextualCollector, ok := h.metricsCollector.(observed.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, MetricOperations, labels)
		contextualCollector.RecordDurationContext(ctx, MetricPreHookDuration, duration, labels)
		return
	}

	h.metricsCollector.IncrementCounter(MetricOperations, labels)
	h.metricsCollector.RecordDuration(MetricPreHookDuration, duration, labels)
}

// recordPost records the notification counter and the collection size.
func (h *Handler[E]) recordPost(ctx context.Context, operation, status string) {
	if h.metricsCollector == nil {
		return
	}

	labels := map[string]string{labelOperation: operation, labelStatus: status}
	sizeLabels := map[string]string{labelOperation: operation}
	size := float64(h.size())

	if contextualCollector, ok := h.metricsCollector.(observed.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, MetricNotifications, labels)
		contextualCollector.RecordValueContext(ctx, MetricCollectionSize, size, sizeLabels)
		return
	}

	h.metricsCollector.IncrementCounter(MetricNotifications, labels)
	h.metricsCollector.RecordValue(MetricCollectionSize, size, sizeLabels)
}

// startSpan starts a span if the tracing collector is configured.
func (h *Handler[E]) startSpan(name, operation string) (context.Context, observed.SpanContext) {
	if h.tracingCollector == nil {
		return h.ctx, nil
	}

	return h.tracingCollector.StartSpan(h.ctx, name, map[string]string{labelOperation: operation})
}

// finishSpan finishes span if one was started.
func (h *Handler[E]) finishSpan(span observed.SpanContext, spanStatus, status string) {
	if h.tracingCollector == nil || span == nil {
		return
	}

	h.tracingCollector.FinishSpan(span, spanStatus, map[string]string{labelStatus: status})
}

func (h *Handler[E]) logDebug(ctx context.Context, msg string, args ...any) {
	if h.logger != nil {
		h.logger.Debug(msg, args...)
	}

	if h.contextualLogger != nil {
		h.contextualLogger.DebugContext(ctx, msg, args...)
	}
}

func (h *Handler[E]) logInfo(ctx context.Context, msg string, args ...any) {
	if h.logger != nil {
		h.logger.Info(msg, args...)
	}

	if h.contextualLogger != nil {
		h.contextualLogger.InfoContext(ctx, msg, args...)
	}
}

func (h *Handler[E]) logError(ctx context.Context, msg, operation string, err error) {
	args := []any{logAttrOperation, operation, logAttrError, err.Error()}

	if h.logger != nil {
		h.logger.Error(msg, args...)
	}

	if h.contextualLogger != nil {
		h.contextualLogger.ErrorContext(ctx, msg, args...)
	}
}
