package journal

import (
	"github.com/google/uuid"

	"github.com/AntonStoeckl/observed-collections-go/journal/internal/adapters"
)

// NewJournalWithAdapter exposes the adapter based constructor to the tests.
func NewJournalWithAdapter[E any](db adapters.DBAdapter, collectionID uuid.UUID, options ...Option) (Journal[E], error) {
	return newJournal[E](db, collectionID, options...)
}
