package observed

// Handler receives every modification of the Collection it is bound to.
//
// Each Pre hook runs before the wrapped container is touched and decides whether the
// modification may proceed. Pre hooks must not mutate the wrapped container.
// Each Post hook runs only after an allowed modification completed without error and
// receives whether the container actually changed.
type Handler[E any] interface {
	// Bind is called exactly once, when the handler starts guarding a Collection.
	Bind(view View[E]) error

	PreAdd(element E) (bool, error)
	PostAdd(element E, changed bool) error

	PreAddAll(elements []E) (bool, error)
	PostAddAll(elements []E, changed bool) error

	PreRemove(element E) (bool, error)
	PostRemove(element E, changed bool) error

	PreRemoveAll(elements []E) (bool, error)
	PostRemoveAll(elements []E, changed bool) error

	PreRetainAll(elements []E) (bool, error)
	PostRetainAll(elements []E, changed bool) error

	PreClear() (bool, error)
	PostClear() error
}

// BaseHandler allows every modification and ignores all notifications.
// Embed it to implement only the hooks you care about.
type BaseHandler[E any] struct {
	view View[E]
}

// Bind stores the view of the guarded collection. A handler can be bound only once.
func (h *BaseHandler[E]) Bind(view View[E]) error {
	if view == nil {
		return ErrInvalidArgument
	}

	if h.view != nil {
		return ErrHandlerAlreadyBound
	}

	h.view = view

	return nil
}

// View returns the guarded collection, or nil before the handler was bound.
func (h *BaseHandler[E]) View() View[E] {
	return h.view
}

func (h *BaseHandler[E]) PreAdd(_ E) (bool, error)          { return true, nil }
func (h *BaseHandler[E]) PostAdd(_ E, _ bool) error         { return nil }
func (h *BaseHandler[E]) PreAddAll(_ []E) (bool, error)     { return true, nil }
func (h *BaseHandler[E]) PostAddAll(_ []E, _ bool) error    { return nil }
func (h *BaseHandler[E]) PreRemove(_ E) (bool, error)       { return true, nil }
func (h *BaseHandler[E]) PostRemove(_ E, _ bool) error      { return nil }
func (h *BaseHandler[E]) PreRemoveAll(_ []E) (bool, error)  { return true, nil }
func (h *BaseHandler[E]) PostRemoveAll(_ []E, _ bool) error { return nil }
func (h *BaseHandler[E]) PreRetainAll(_ []E) (bool, error)  { return true, nil }
func (h *BaseHandler[E]) PostRetainAll(_ []E, _ bool) error { return nil }
func (h *BaseHandler[E]) PreClear() (bool, error)           { return true, nil }
func (h *BaseHandler[E]) PostClear() error                  { return nil }

var _ Handler[int] = (*BaseHandler[int])(nil)
