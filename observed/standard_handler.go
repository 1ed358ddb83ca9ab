package observed

import (
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// ListenerID identifies a listener registered on a StandardHandler.
type ListenerID uuid.UUID

// String returns the canonical uuid representation.
func (id ListenerID) String() string {
	return uuid.UUID(id).String()
}

type preRegistration[E any] struct {
	id       ListenerID
	listener PreListener[E]
	mask     []EventType
}

type postRegistration[E any] struct {
	id       ListenerID
	listener PostListener[E]
	mask     []EventType
}

// StandardHandler is the Handler built by the default resolution strategy.
// It fans every modification out to its registered listeners: PreListeners in
// registration order until the first veto, PostListeners all of them.
//
// A listener can be restricted to a subset of event types, no types means all.
type StandardHandler[E any] struct {
	BaseHandler[E]

	mu            sync.RWMutex
	preListeners  []preRegistration[E]
	postListeners []postRegistration[E]
	preSize       int
}

// NewStandardHandler creates a StandardHandler without listeners, which allows everything.
func NewStandardHandler[E any]() *StandardHandler[E] {
	return &StandardHandler[E]{}
}

// AddPreListener registers a listener that may veto modifications of the given types.
func (h *StandardHandler[E]) AddPreListener(listener PreListener[E], types ...EventType) ListenerID {
	id := ListenerID(uuid.New())

	h.mu.Lock()
	defer h.mu.Unlock()

	h.preListeners = append(h.preListeners, preRegistration[E]{id: id, listener: listener, mask: types})

	return id
}

// AddPostListener registers a listener that is notified of committed modifications of the given types.
func (h *StandardHandler[E]) AddPostListener(listener PostListener[E], types ...EventType) ListenerID {
	id := ListenerID(uuid.New())

	h.mu.Lock()
	defer h.mu.Unlock()

	h.postListeners = append(h.postListeners, postRegistration[E]{id: id, listener: listener, mask: types})

	return id
}

// AddListener registers listener as both pre and post listener under one ListenerID.
func (h *StandardHandler[E]) AddListener(listener Listener[E], types ...EventType) ListenerID {
	id := ListenerID(uuid.New())

	h.mu.Lock()
	defer h.mu.Unlock()

	h.preListeners = append(h.preListeners, preRegistration[E]{id: id, listener: listener, mask: types})
	h.postListeners = append(h.postListeners, postRegistration[E]{id: id, listener: listener, mask: types})

	return id
}

// RemoveListener unregisters every listener registered under id and reports whether there was one.
func (h *StandardHandler[E]) RemoveListener(id ListenerID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	preBefore, postBefore := len(h.preListeners), len(h.postListeners)

	h.preListeners = slices.DeleteFunc(h.preListeners, func(r preRegistration[E]) bool { return r.id == id })
	h.postListeners = slices.DeleteFunc(h.postListeners, func(r postRegistration[E]) bool { return r.id == id })

	return len(h.preListeners) < preBefore || len(h.postListeners) < postBefore
}

// PreListenerCount returns the number of registered pre listeners.
func (h *StandardHandler[E]) PreListenerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.preListeners)
}

// PostListenerCount returns the number of registered post listeners.
func (h *StandardHandler[E]) PostListenerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.postListeners)
}

func (h *StandardHandler[E]) PreAdd(element E) (bool, error) {
	return h.firePre(EventTypeAdd, []E{element})
}

func (h *StandardHandler[E]) PostAdd(element E, changed bool) error {
	return h.firePost(EventTypeAdd, []E{element}, changed)
}

func (h *StandardHandler[E]) PreAddAll(elements []E) (bool, error) {
	return h.firePre(EventTypeAddAll, elements)
}

func (h *StandardHandler[E]) PostAddAll(elements []E, changed bool) error {
	return h.firePost(EventTypeAddAll, elements, changed)
}

func (h *StandardHandler[E]) PreRemove(element E) (bool, error) {
	return h.firePre(EventTypeRemove, []E{element})
}

func (h *StandardHandler[E]) PostRemove(element E, changed bool) error {
	return h.firePost(EventTypeRemove, []E{element}, changed)
}

func (h *StandardHandler[E]) PreRemoveAll(elements []E) (bool, error) {
	return h.firePre(EventTypeRemoveAll, elements)
}

func (h *StandardHandler[E]) PostRemoveAll(elements []E, changed bool) error {
	return h.firePost(EventTypeRemoveAll, elements, changed)
}

func (h *StandardHandler[E]) PreRetainAll(elements []E) (bool, error) {
	return h.firePre(EventTypeRetainAll, elements)
}

func (h *StandardHandler[E]) PostRetainAll(elements []E, changed bool) error {
	return h.firePost(EventTypeRetainAll, elements, changed)
}

func (h *StandardHandler[E]) PreClear() (bool, error) {
	return h.firePre(EventTypeClear, nil)
}

func (h *StandardHandler[E]) PostClear() error {
	return h.firePost(EventTypeClear, nil, true)
}

// firePre notifies the matching pre listeners and remembers the size before the modification.
func (h *StandardHandler[E]) firePre(eventType EventType, elements []E) (bool, error) {
	h.preSize = h.size()

	h.mu.RLock()
	listeners := slices.Clone(h.preListeners)
	h.mu.RUnlock()

	event := ModificationEvent[E]{
		Type:     eventType,
		Elements: elements,
		PreSize:  h.preSize,
		Source:   h.View(),
	}

	for _, registration := range listeners {
		if !matches(registration.mask, eventType) {
			continue
		}

		if err := registration.listener.Modifying(event); err != nil {
			if errors.Is(err, ErrVetoed) {
				return false, nil
			}

			return false, err
		}
	}

	return true, nil
}

// firePost notifies all matching post listeners and joins their errors.
func (h *StandardHandler[E]) firePost(eventType EventType, elements []E, changed bool) error {
	h.mu.RLock()
	listeners := slices.Clone(h.postListeners)
	h.mu.RUnlock()

	event := ModificationEvent[E]{
		Type:     eventType,
		Elements: elements,
		Changed:  changed,
		PreSize:  h.preSize,
		PostSize: h.size(),
		Source:   h.View(),
	}

	var errs []error
	for _, registration := range listeners {
		if !matches(registration.mask, eventType) {
			continue
		}

		if err := registration.listener.Modified(event); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (h *StandardHandler[E]) size() int {
	if view := h.View(); view != nil {
		return view.Len()
	}

	return 0
}

func matches(mask []EventType, eventType EventType) bool {
	return len(mask) == 0 || slices.Contains(mask, eventType)
}

var _ Handler[int] = (*StandardHandler[int])(nil)
