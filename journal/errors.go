package journal

import "errors"

var (
	// ErrNilDatabaseConnection is returned when a Journal is created without a database connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyCollectionID is returned when a Journal is created for uuid.Nil.
	ErrEmptyCollectionID = errors.New("collection id must not be empty")

	// ErrEmptyTableName is returned when WithTableName is given an empty name.
	ErrEmptyTableName = errors.New("table name must not be empty")

	// ErrInvalidAppendTimeout is returned when WithAppendTimeout is given a negative duration.
	ErrInvalidAppendTimeout = errors.New("append timeout must not be negative")

	ErrBuildingQueryFailed    = errors.New("building query failed")
	ErrEncodingElementsFailed = errors.New("encoding elements failed")
	ErrDecodingElementsFailed = errors.New("decoding elements failed")
	ErrAppendingEntryFailed   = errors.New("appending journal entry failed")
	ErrQueryingEntriesFailed  = errors.New("querying journal entries failed")
	ErrScanningDBRowFailed    = errors.New("scanning db row failed")
	ErrUnknownEventType       = errors.New("unknown event type")
	ErrReplayingEntryFailed   = errors.New("replaying journal entry failed")
)
