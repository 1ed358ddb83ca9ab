package instrumented

import (
	"context"
	"time"

	"github.com/AntonStoeckl/observed-collections-go/observed"
)

const (
	// MetricOperations counts pre hook decisions.
	MetricOperations = "observed_collection_operations_total"

	// MetricPreHookDuration measures how long the wrapped handler took to decide.
	MetricPreHookDuration = "observed_collection_pre_hook_duration_seconds"

	// MetricNotifications counts post hook notifications.
	MetricNotifications = "observed_collection_notifications_total"

	// MetricCollectionSize records the collection size after each notification.
	MetricCollectionSize = "observed_collection_size"

	SpanNamePrefixPre  = "observed.pre."
	SpanNamePrefixPost = "observed.post."

	StatusAllowed   = "allowed"
	StatusVetoed    = "vetoed"
	StatusError     = "error"
	StatusChanged   = "changed"
	StatusUnchanged = "unchanged"

	spanStatusOK     = "ok"
	spanStatusVetoed = "vetoed"
	spanStatusError  = "error"

	labelOperation = "operation"
	labelStatus    = "status"

	logMsgAllowed         = "modification allowed"
	logMsgVetoed          = "modification vetoed"
	logMsgNotified        = "modification notified"
	logMsgPreHookFailed   = "pre modification hook failed"
	logMsgPostHookFailed  = "post modification hook failed"
	logAttrOperation      = "operation"
	logAttrChanged        = "changed"
	logAttrDurationMS     = "duration_ms"
	logAttrError          = "error"
	logAttrCollectionSize = "collection_size"
)

// Handler decorates an observed.Handler with observability.
// All decisions are made by the wrapped handler.
type Handler[E any] struct {
	inner            observed.Handler[E]
	view             observed.View[E]
	ctx              context.Context
	metricsCollector observed.MetricsCollector
	tracingCollector observed.TracingCollector
	contextualLogger observed.ContextualLogger
	logger           observed.Logger
}

// NewHandler wraps inner. It fails with observed.ErrInvalidArgument if inner is nil.
func NewHandler[E any](inner observed.Handler[E], options ...Option[E]) (*Handler[E], error) {
	if inner == nil {
		return nil, observed.ErrInvalidArgument
	}

	h := &Handler[E]{
		inner: inner,
		ctx:   context.Background(),
	}

	for _, option := range options {
		if err := option(h); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// Inner returns the wrapped handler.
func (h *Handler[E]) Inner() observed.Handler[E] {
	return h.inner
}

// Bind binds the wrapped handler and keeps the view to report the collection size.
func (h *Handler[E]) Bind(view observed.View[E]) error {
	if err := h.inner.Bind(view); err != nil {
		return err
	}

	h.view = view

	return nil
}

func (h *Handler[E]) PreAdd(element E) (bool, error) {
	return h.pre(observed.EventTypeAdd, func() (bool, error) { return h.inner.PreAdd(element) })
}

func (h *Handler[E]) PostAdd(element E, changed bool) error {
	return h.post(observed.EventTypeAdd, changed, func() error { return h.inner.PostAdd(element, changed) })
}

func (h *Handler[E]) PreAddAll(elements []E) (bool, error) {
	return h.pre(observed.EventTypeAddAll, func() (bool, error) { return h.inner.PreAddAll(elements) })
}

func (h *Handler[E]) PostAddAll(elements []E, changed bool) error {
	return h.post(observed.EventTypeAddAll, changed, func() error { return h.inner.PostAddAll(elements, changed) })
}

func (h *Handler[E]) PreRemove(element E) (bool, error) {
	return h.pre(observed.EventTypeRemove, func() (bool, error) { return h.inner.PreRemove(element) })
}

func (h *Handler[E]) PostRemove(element E, changed bool) error {
	return h.post(observed.EventTypeRemove, changed, func() error { return h.inner.PostRemove(element, changed) })
}

func (h *Handler[E]) PreRemoveAll(elements []E) (bool, error) {
	return h.pre(observed.EventTypeRemoveAll, func() (bool, error) { return h.inner.PreRemoveAll(elements) })
}

func (h *Handler[E]) PostRemoveAll(elements []E, changed bool) error {
	return h.post(observed.EventTypeRemoveAll, changed, func() error { return h.inner.PostRemoveAll(elements, changed) })
}

func (h *Handler[E]) PreRetainAll(elements []E) (bool, error) {
	return h.pre(observed.EventTypeRetainAll, func() (bool, error) { return h.inner.PreRetainAll(elements) })
}

func (h *Handler[E]) PostRetainAll(elements []E, changed bool) error {
	return h.post(observed.EventTypeRetainAll, changed, func() error { return h.inner.PostRetainAll(elements, changed) })
}

func (h *Handler[E]) PreClear() (bool, error) {
	return h.pre(observed.EventTypeClear, h.inner.PreClear)
}

func (h *Handler[E]) PostClear() error {
	return h.post(observed.EventTypeClear, true, h.inner.PostClear)
}

// pre instruments one pre hook call of the wrapped handler.
func (h *Handler[E]) pre(eventType observed.EventType, call func() (bool, error)) (bool, error) {
	operation := eventType.String()
	ctx, span := h.startSpan(SpanNamePrefixPre+operation, operation)

	start := time.Now()
	allowed, err := call()
	duration := time.Since(start)

	switch {
	case err != nil:
		h.recordPre(ctx, operation, StatusError, duration)
		h.finishSpan(span, spanStatusError, StatusError)
		h.logError(ctx, logMsgPreHookFailed, operation, err)

	case !allowed:
		h.recordPre(ctx, operation, StatusVetoed, duration)
		h.finishSpan(span, spanStatusVetoed, StatusVetoed)
		h.logInfo(ctx, logMsgVetoed, logAttrOperation, operation, logAttrDurationMS, toMilliseconds(duration))

	default:
		h.recordPre(ctx, operation, StatusAllowed, duration)
		h.finishSpan(span, spanStatusOK, StatusAllowed)
		h.logDebug(ctx, logMsgAllowed, logAttrOperation, operation, logAttrDurationMS, toMilliseconds(duration))
	}

	return allowed, err
}

// post instruments one post hook call of the wrapped handler.
func (h *Handler[E]) post(eventType observed.EventType, changed bool, call func() error) error {
	operation := eventType.String()
	ctx, span := h.startSpan(SpanNamePrefixPost+operation, operation)

	err := call()

	status := StatusUnchanged
	if changed {
		status = StatusChanged
	}

	if err != nil {
		h.recordPost(ctx, operation, StatusError)
		h.finishSpan(span, spanStatusError, StatusError)
		h.logError(ctx, logMsgPostHookFailed, operation, err)

		return err
	}

	h.recordPost(ctx, operation, status)
	h.finishSpan(span, spanStatusOK, status)
	h.logDebug(ctx, logMsgNotified, logAttrOperation, operation, logAttrChanged, changed, logAttrCollectionSize, h.size())

	return nil
}

func (h *Handler[E]) size() int {
	if h.view == nil {
		return 0
	}

	return h.view.Len()
}

func toMilliseconds(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

var _ observed.Handler[int] = (*Handler[int])(nil)
