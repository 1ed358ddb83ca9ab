package observed

import (
	jsoniter "github.com/json-iterator/go"
)

// EventType names the kind of modification an event describes.
type EventType string

const (
	EventTypeAdd       EventType = "add"
	EventTypeAddAll    EventType = "add_all"
	EventTypeRemove    EventType = "remove"
	EventTypeRemoveAll EventType = "remove_all"
	EventTypeRetainAll EventType = "retain_all"
	EventTypeClear     EventType = "clear"
)

// AllEventTypes returns every EventType in a stable order.
func AllEventTypes() []EventType {
	return []EventType{
		EventTypeAdd,
		EventTypeAddAll,
		EventTypeRemove,
		EventTypeRemoveAll,
		EventTypeRetainAll,
		EventTypeClear,
	}
}

// String implements fmt.Stringer.
func (t EventType) String() string {
	return string(t)
}

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	switch t {
	case EventTypeAdd, EventTypeAddAll, EventTypeRemove, EventTypeRemoveAll, EventTypeRetainAll, EventTypeClear:
		return true
	default:
		return false
	}
}

// ModificationEvent describes one modification as seen by listeners of a StandardHandler.
//
// Elements holds the single element for add and remove, the caller's slice for batch
// operations and nil for clear. Changed and PostSize are only meaningful after the
// modification was committed.
type ModificationEvent[E any] struct {
	Type     EventType
	Elements []E
	Changed  bool
	PreSize  int
	PostSize int
	Source   View[E]
}

type modificationEventJSON[E any] struct {
	Type     EventType `json:"type"`
	Elements []E       `json:"elements,omitempty"`
	Changed  bool      `json:"changed"`
	PreSize  int       `json:"pre_size"`
	PostSize int       `json:"post_size"`
}

// MarshalJSON encodes the event without its Source.
func (ev ModificationEvent[E]) MarshalJSON() ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(modificationEventJSON[E]{
		Type:     ev.Type,
		Elements: ev.Elements,
		Changed:  ev.Changed,
		PreSize:  ev.PreSize,
		PostSize: ev.PostSize,
	})
}

// UnmarshalJSON decodes an event encoded by MarshalJSON. Source stays nil.
func (ev *ModificationEvent[E]) UnmarshalJSON(data []byte) error {
	var decoded modificationEventJSON[E]
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*ev = ModificationEvent[E]{
		Type:     decoded.Type,
		Elements: decoded.Elements,
		Changed:  decoded.Changed,
		PreSize:  decoded.PreSize,
		PostSize: decoded.PostSize,
	}

	return nil
}
