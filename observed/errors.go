package observed

import (
	"errors"
)

var (
	// ErrInvalidArgument is returned when a required collaborator is missing.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNilContainer is returned when a nil container is supplied to Wrap or WrapWith.
	ErrNilContainer = errors.Join(ErrInvalidArgument, errors.New("container must not be nil"))

	// ErrUnsupportedListener is returned when no resolution strategy accepts a listener value.
	ErrUnsupportedListener = errors.New("no handler can be resolved for listener")

	// ErrHandlerAlreadyBound is returned when a handler that guards a collection is bound again.
	ErrHandlerAlreadyBound = errors.New("handler is already bound to a collection")

	// ErrInvalidStrategy is returned when a resolution strategy lacks its Accepts or Create func.
	ErrInvalidStrategy = errors.New("resolution strategy must have Accepts and Create")

	// ErrIllegalState is returned by iterators when Remove is called before Next or twice in a row.
	ErrIllegalState = errors.New("iterator remove called out of sequence")

	// ErrNoSuchElement is returned by iterators when Next is called on an exhausted iterator.
	ErrNoSuchElement = errors.New("iterator has no more elements")

	// ErrVetoed is returned by a PreListener to veto a modification.
	ErrVetoed = errors.New("modification vetoed")

	// ErrPreHookFailed wraps errors returned by a handler's pre hook.
	ErrPreHookFailed = errors.New("pre modification hook failed")

	// ErrPostHookFailed wraps errors returned by a handler's post hook.
	// The modification has already been committed when this error is returned.
	ErrPostHookFailed = errors.New("post modification hook failed")
)
