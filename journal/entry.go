package journal

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/observed-collections-go/observed"
)

// Entry is one journaled modification as read back from the database.
// Elements holds the raw JSON array of the modification's elements.
type Entry struct {
	SequenceNumber int64
	CollectionID   uuid.UUID
	EventType      observed.EventType
	Elements       []byte
	Changed        bool
	PreSize        int
	PostSize       int
	OccurredAt     time.Time
}

// DecodeElements decodes the elements of entry.
func DecodeElements[E any](entry Entry) ([]E, error) {
	var elements []E
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(entry.Elements, &elements); err != nil {
		return nil, errors.Join(ErrDecodingElementsFailed, err)
	}

	return elements, nil
}

// Replay applies the changing entries to container in order.
// Entries that did not change the collection are skipped.
// Replay into the bare container, not into the journaled collection, or it gets journaled again.
func Replay[E any](entries []Entry, container observed.Container[E]) error {
	for _, entry := range entries {
		if !entry.Changed {
			continue
		}

		if err := replayEntry(entry, container); err != nil {
			return errors.Join(ErrReplayingEntryFailed, fmt.Errorf("sequence number %d", entry.SequenceNumber), err)
		}
	}

	return nil
}

func replayEntry[E any](entry Entry, container observed.Container[E]) error {
	if entry.EventType == observed.EventTypeClear {
		return container.Clear()
	}

	elements, err := DecodeElements[E](entry)
	if err != nil {
		return err
	}

	switch entry.EventType {
	case observed.EventTypeAdd:
		for _, element := range elements {
			if _, err := container.Add(element); err != nil {
				return err
			}
		}

	case observed.EventTypeRemove:
		for _, element := range elements {
			if _, err := container.Remove(element); err != nil {
				return err
			}
		}

	case observed.EventTypeAddAll:
		_, err = container.AddAll(elements)

	case observed.EventTypeRemoveAll:
		_, err = container.RemoveAll(elements)

	case observed.EventTypeRetainAll:
		_, err = container.RetainAll(elements)

	default:
		err = errors.Join(ErrUnknownEventType, fmt.Errorf("event type %q", entry.EventType))
	}

	return err
}
