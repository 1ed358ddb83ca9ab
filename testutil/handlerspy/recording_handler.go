package handlerspy

import (
	"sync"

	"github.com/AntonStoeckl/observed-collections-go/observed"
)

// Hook names as recorded in Call.Hook.
const (
	HookPreAdd        = "PreAdd"
	HookPostAdd       = "PostAdd"
	HookPreAddAll     = "PreAddAll"
	HookPostAddAll    = "PostAddAll"
	HookPreRemove     = "PreRemove"
	HookPostRemove    = "PostRemove"
	HookPreRemoveAll  = "PreRemoveAll"
	HookPostRemoveAll = "PostRemoveAll"
	HookPreRetainAll  = "PreRetainAll"
	HookPostRetainAll = "PostRetainAll"
	HookPreClear      = "PreClear"
	HookPostClear     = "PostClear"
)

// Call is one recorded hook invocation.
// Element is set for single element hooks, Elements for batch hooks.
// Changed is only meaningful for post hooks; SizeAtCall is the size of the guarded
// collection when the hook ran.
type Call[E any] struct {
	Hook       string
	Element    E
	Elements   []E
	Changed    bool
	SizeAtCall int
}

// RecordingHandler is an observed.Handler that records its calls.
// A veto func returning true vetoes the corresponding modification.
// PreErr and PostErr, when set, are returned by every pre or post hook.
type RecordingHandler[E any] struct {
	observed.BaseHandler[E]

	VetoAdd       func(element E) bool
	VetoAddAll    func(elements []E) bool
	VetoRemove    func(element E) bool
	VetoRemoveAll func(elements []E) bool
	VetoRetainAll func(elements []E) bool
	VetoClear     func() bool
	PreErr        error
	PostErr       error

	mu    sync.Mutex
	calls []Call[E]
}

// NewRecordingHandler creates a RecordingHandler that allows everything.
func NewRecordingHandler[E any]() *RecordingHandler[E] {
	return &RecordingHandler[E]{}
}

// Calls returns a copy of all recorded calls in order.
func (h *RecordingHandler[E]) Calls() []Call[E] {
	h.mu.Lock()
	defer h.mu.Unlock()

	calls := make([]Call[E], len(h.calls))
	copy(calls, h.calls)

	return calls
}

// Hooks returns the names of all recorded calls in order.
func (h *RecordingHandler[E]) Hooks() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	hooks := make([]string, 0, len(h.calls))
	for _, call := range h.calls {
		hooks = append(hooks, call.Hook)
	}

	return hooks
}

// CountCalls returns how often hook was called.
func (h *RecordingHandler[E]) CountCalls(hook string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	count := 0
	for _, call := range h.calls {
		if call.Hook == hook {
			count++
		}
	}

	return count
}

// Reset clears all recorded calls.
func (h *RecordingHandler[E]) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.calls = h.calls[:0]
}

func (h *RecordingHandler[E]) PreAdd(element E) (bool, error) {
	h.record(Call[E]{Hook: HookPreAdd, Element: element})
	return h.decide(h.VetoAdd != nil && h.VetoAdd(element))
}

func (h *RecordingHandler[E]) PostAdd(element E, changed bool) error {
	h.record(Call[E]{Hook: HookPostAdd, Element: element, Changed: changed})
	return h.PostErr
}

func (h *RecordingHandler[E]) PreAddAll(elements []E) (bool, error) {
	h.record(Call[E]{Hook: HookPreAddAll, Elements: elements})
	return h.decide(h.VetoAddAll != nil && h.VetoAddAll(elements))
}

func (h *RecordingHandler[E]) PostAddAll(elements []E, changed bool) error {
	h.record(Call[E]{Hook: HookPostAddAll, Elements: elements, Changed: changed})
	return h.PostErr
}

func (h *RecordingHandler[E]) PreRemove(element E) (bool, error) {
	h.record(Call[E]{Hook: HookPreRemove, Element: element})
	return h.decide(h.VetoRemove != nil && h.VetoRemove(element))
}

func (h *RecordingHandler[E]) PostRemove(element E, changed bool) error {
	h.record(Call[E]{Hook: HookPostRemove, Element: element, Changed: changed})
	return h.PostErr
}

func (h *RecordingHandler[E]) PreRemoveAll(elements []E) (bool, error) {
	h.record(Call[E]{Hook: HookPreRemoveAll, Elements: elements})
	return h.decide(h.VetoRemoveAll != nil && h.VetoRemoveAll(elements))
}

func (h *RecordingHandler[E]) PostRemoveAll(elements []E, changed bool) error {
	h.record(Call[E]{Hook: HookPostRemoveAll, Elements: elements, Changed: changed})
	return h.PostErr
}

func (h *RecordingHandler[E]) PreRetainAll(elements []E) (bool, error) {
	h.record(Call[E]{Hook: HookPreRetainAll, Elements: elements})
	return h.decide(h.VetoRetainAll != nil && h.VetoRetainAll(elements))
}

func (h *RecordingHandler[E]) PostRetainAll(elements []E, changed bool) error {
	h.record(Call[E]{Hook: HookPostRetainAll, Elements: elements, Changed: changed})
	return h.PostErr
}

func (h *RecordingHandler[E]) PreClear() (bool, error) {
	h.record(Call[E]{Hook: HookPreClear})
	return h.decide(h.VetoClear != nil && h.VetoClear())
}

func (h *RecordingHandler[E]) PostClear() error {
	h.record(Call[E]{Hook: HookPostClear, Changed: true})
	return h.PostErr
}

func (h *RecordingHandler[E]) decide(vetoed bool) (bool, error) {
	if h.PreErr != nil {
		return false, h.PreErr
	}

	return !vetoed, nil
}

func (h *RecordingHandler[E]) record(call Call[E]) {
	if view := h.View(); view != nil {
		call.SizeAtCall = view.Len()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.calls = append(h.calls, call)
}

var _ observed.Handler[int] = (*RecordingHandler[int])(nil)
