package observed

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// Strategy turns a listener value into a Handler.
// Accepts decides whether the strategy can handle the listener (which may be nil),
// Create builds the handler for the collection that is about to be guarded.
type Strategy[E any] struct {
	Name    string
	Accepts func(listener any) bool
	Create  func(view View[E], listener any) (Handler[E], error)
}

// Registry holds the resolution strategies for one element type.
// Strategies are consulted from the most recently registered to the oldest one.
type Registry[E any] struct {
	mu         sync.RWMutex
	strategies []Strategy[E]
}

// NewRegistry creates a Registry seeded with DefaultStrategy.
func NewRegistry[E any]() *Registry[E] {
	return &Registry[E]{
		strategies: []Strategy[E]{DefaultStrategy[E]()},
	}
}

// Register adds a strategy that takes precedence over all strategies registered before.
func (r *Registry[E]) Register(strategy Strategy[E]) error {
	if strategy.Accepts == nil || strategy.Create == nil {
		return ErrInvalidStrategy
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.strategies = append(r.strategies, strategy)

	return nil
}

// Resolve returns the handler for listener. A listener that already is a Handler is returned as is.
// The returned handler is not bound yet.
func (r *Registry[E]) Resolve(view View[E], listener any) (Handler[E], error) {
	if handler, ok := listener.(Handler[E]); ok {
		return handler, nil
	}

	r.mu.RLock()
	strategies := slices.Clone(r.strategies)
	r.mu.RUnlock()

	for _, strategy := range slices.Backward(strategies) {
		if !strategy.Accepts(listener) {
			continue
		}

		handler, err := strategy.Create(view, listener)
		if err != nil {
			return nil, err
		}

		return handler, nil
	}

	return nil, errors.Join(ErrUnsupportedListener, fmt.Errorf("listener type %T", listener))
}

// DefaultStrategy builds a StandardHandler for nil and for the listener types of this package:
// Listener, PreListener, PostListener and the func adapters PreListenerFunc and PostListenerFunc.
func DefaultStrategy[E any]() Strategy[E] {
	return Strategy[E]{
		Name: "standard",
		Accepts: func(listener any) bool {
			switch listener.(type) {
			case nil, Listener[E], PreListener[E], PostListener[E]:
				return true
			default:
				return false
			}
		},
		Create: func(_ View[E], listener any) (Handler[E], error) {
			handler := NewStandardHandler[E]()

			switch l := listener.(type) {
			case nil:
			case Listener[E]:
				handler.AddListener(l)
			case PreListener[E]:
				handler.AddPreListener(l)
			case PostListener[E]:
				handler.AddPostListener(l)
			default:
				return nil, errors.Join(ErrUnsupportedListener, fmt.Errorf("listener type %T", listener))
			}

			return handler, nil
		},
	}
}

var defaultRegistries = struct {
	mu    sync.Mutex
	byTyp map[reflect.Type]any
}{byTyp: map[reflect.Type]any{}}

// DefaultRegistry returns the process-wide Registry for element type E.
// It is created on first use and seeded with DefaultStrategy.
func DefaultRegistry[E any]() *Registry[E] {
	elementType := reflect.TypeFor[E]()

	defaultRegistries.mu.Lock()
	defer defaultRegistries.mu.Unlock()

	if registry, ok := defaultRegistries.byTyp[elementType]; ok {
		return registry.(*Registry[E])
	}

	registry := NewRegistry[E]()
	defaultRegistries.byTyp[elementType] = registry

	return registry
}

// RegisterStrategy registers strategy on the process-wide Registry for element type E.
func RegisterStrategy[E any](strategy Strategy[E]) error {
	return DefaultRegistry[E]().Register(strategy)
}
