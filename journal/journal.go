package journal

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/observed-collections-go/journal/internal/adapters"
	"github.com/AntonStoeckl/observed-collections-go/observed"
)

const (
	defaultTableName             = "collection_journal"
	logMsgEncodeElementsFailed   = "failed to encode elements"
	logMsgBuildInsertQueryFailed = "failed to build insert query"
	logMsgBuildSelectQueryFailed = "failed to build select query"
	logMsgDBExecFailed           = "database execution failed during journal append"
	logMsgDBQueryFailed          = "database query execution failed"
	logMsgCloseRowsFailed        = "failed to close database rows"
	logMsgScanRowFailed          = "failed to scan database row"
	logMsgEntryAppended          = "journal entry appended"
	logMsgEntriesLoaded          = "journal entries loaded"
	logMsgSQLExecuted            = "executed sql for: "
	logAttrError                 = "error"
	logAttrQuery                 = "query"
	logAttrEventType             = "event_type"
	logAttrCollectionID          = "collection_id"
	logAttrEntryCount            = "entry_count"
	logAttrDurationMS            = "duration_ms"
	logActionAppend              = "append"
	logActionQuery               = "query"
	colCollectionID              = "collection_id"
	colEventType                 = "event_type"
	colElements                  = "elements"
	colChanged                   = "changed"
	colPreSize                   = "pre_size"
	colPostSize                  = "post_size"
	colOccurredAt                = "occurred_at"
	colSequenceNumber            = "sequence_number"
	dialectPostgres              = "postgres"
	castJsonb                    = "?::jsonb"
	castTimestamp                = "?::timestamp with time zone"
)

// Journal appends every modification of one collection to a Postgres table.
// Register it as a PostListener, e.g. with observed.WrapWith(container, journal).
type Journal[E any] struct {
	db           adapters.DBAdapter
	collectionID uuid.UUID
	settings
}

// NewJournalFromPGXPool creates a Journal for collectionID using a pgx Pool.
func NewJournalFromPGXPool[E any](db *pgxpool.Pool, collectionID uuid.UUID, options ...Option) (Journal[E], error) {
	if db == nil {
		return Journal[E]{}, ErrNilDatabaseConnection
	}

	return newJournal[E](adapters.NewPGXAdapter(db), collectionID, options...)
}

// NewJournalFromSQLDB creates a Journal for collectionID using a sql.DB.
func NewJournalFromSQLDB[E any](db *sql.DB, collectionID uuid.UUID, options ...Option) (Journal[E], error) {
	if db == nil {
		return Journal[E]{}, ErrNilDatabaseConnection
	}

	return newJournal[E](adapters.NewSQLAdapter(db), collectionID, options...)
}

// NewJournalFromSQLX creates a Journal for collectionID using a sqlx.DB.
func NewJournalFromSQLX[E any](db *sqlx.DB, collectionID uuid.UUID, options ...Option) (Journal[E], error) {
	if db == nil {
		return Journal[E]{}, ErrNilDatabaseConnection
	}

	return newJournal[E](adapters.NewSQLXAdapter(db), collectionID, options...)
}

func newJournal[E any](db adapters.DBAdapter, collectionID uuid.UUID, options ...Option) (Journal[E], error) {
	if collectionID == uuid.Nil {
		return Journal[E]{}, ErrEmptyCollectionID
	}

	j := Journal[E]{
		db:           db,
		collectionID: collectionID,
		settings:     defaultSettings(),
	}

	for _, option := range options {
		if err := option(&j.settings); err != nil {
			return Journal[E]{}, err
		}
	}

	return j, nil
}

// CollectionID returns the id of the journaled collection.
func (j Journal[E]) CollectionID() uuid.UUID {
	return j.collectionID
}

// Modified appends event as one entry.
// The error is returned by the collection as a post hook failure; the modification itself stays.
func (j Journal[E]) Modified(event observed.ModificationEvent[E]) error {
	if j.changedOnly && !event.Changed {
		return nil
	}

	sqlQuery, buildErr := j.buildInsertQuery(event, time.Now().UTC())
	if buildErr != nil {
		return buildErr
	}

	ctx := j.ctx
	if j.appendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.appendTimeout)
		defer cancel()
	}

	start := time.Now()
	_, execErr := j.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	j.logQueryWithDuration(sqlQuery, logActionAppend, duration)

	if execErr != nil {
		j.logError(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		return errors.Join(ErrAppendingEntryFailed, execErr)
	}

	j.logOperation(
		logMsgEntryAppended,
		logAttrCollectionID, j.collectionID.String(),
		logAttrEventType, event.Type.String(),
		logAttrDurationMS, durationToMilliseconds(duration),
	)

	return nil
}

// Entries returns all entries of the collection ordered by sequence number.
func (j Journal[E]) Entries(ctx context.Context) ([]Entry, error) {
	sqlQuery, buildErr := j.buildSelectQuery()
	if buildErr != nil {
		j.logError(logMsgBuildSelectQueryFailed, logAttrError, buildErr.Error())
		return nil, buildErr
	}

	start := time.Now()
	rows, queryErr := j.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	j.logQueryWithDuration(sqlQuery, logActionQuery, duration)

	if queryErr != nil {
		j.logError(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		return nil, errors.Join(ErrQueryingEntriesFailed, queryErr)
	}
	defer j.closeRows(rows)

	entries, scanErr := j.processQueryResults(rows)
	if scanErr != nil {
		return nil, scanErr
	}

	j.logOperation(
		logMsgEntriesLoaded,
		logAttrCollectionID, j.collectionID.String(),
		logAttrEntryCount, len(entries),
		logAttrDurationMS, durationToMilliseconds(duration),
	)

	return entries, nil
}

func (j Journal[E]) processQueryResults(rows adapters.DBRows) ([]Entry, error) {
	entries := make([]Entry, 0)

	for rows.Next() {
		var eventType string
		entry := Entry{CollectionID: j.collectionID}

		rowScanErr := rows.Scan(
			&entry.SequenceNumber,
			&eventType,
			&entry.Elements,
			&entry.Changed,
			&entry.PreSize,
			&entry.PostSize,
			&entry.OccurredAt,
		)
		if rowScanErr != nil {
			j.logError(logMsgScanRowFailed, logAttrError, rowScanErr.Error())
			return nil, errors.Join(ErrScanningDBRowFailed, rowScanErr)
		}

		entry.EventType = observed.EventType(eventType)
		if !entry.EventType.Valid() {
			j.logError(logMsgScanRowFailed, logAttrError, ErrUnknownEventType.Error(), logAttrEventType, eventType)
			return nil, errors.Join(ErrScanningDBRowFailed, ErrUnknownEventType)
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		j.logError(logMsgDBQueryFailed, logAttrError, err.Error())
		return nil, errors.Join(ErrQueryingEntriesFailed, err)
	}

	return entries, nil
}

func (j Journal[E]) buildInsertQuery(event observed.ModificationEvent[E], occurredAt time.Time) (string, error) {
	elements := event.Elements
	if elements == nil {
		elements = []E{}
	}

	elementsJSON, encodeErr := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(elements)
	if encodeErr != nil {
		j.logError(logMsgEncodeElementsFailed, logAttrError, encodeErr.Error(), logAttrEventType, event.Type.String())
		return "", errors.Join(ErrEncodingElementsFailed, encodeErr)
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(j.tableName).
		Cols(colCollectionID, colEventType, colElements, colChanged, colPreSize, colPostSize, colOccurredAt).
		Vals(goqu.Vals{
			j.collectionID.String(),
			event.Type.String(),
			goqu.L(castJsonb, string(elementsJSON)),
			event.Changed,
			event.PreSize,
			event.PostSize,
			goqu.L(castTimestamp, occurredAt.Format(time.RFC3339Nano)),
		})

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		j.logError(logMsgBuildInsertQueryFailed, logAttrError, toSQLErr.Error(), logAttrEventType, event.Type.String())
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (j Journal[E]) buildSelectQuery() (string, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(j.tableName).
		Select(colSequenceNumber, colEventType, colElements, colChanged, colPreSize, colPostSize, colOccurredAt).
		Where(goqu.Ex{colCollectionID: j.collectionID.String()}).
		Order(goqu.I(colSequenceNumber).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// closeRows closes database rows and logs any errors.
func (j Journal[E]) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if j.logger != nil {
			j.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

// logQueryWithDuration logs SQL statements with execution timing at debug level if the logger is configured.
func (j Journal[E]) logQueryWithDuration(sqlQuery, action string, duration time.Duration) {
	if j.logger != nil {
		j.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if the logger is configured.
func (j Journal[E]) logOperation(message string, args ...any) {
	if j.logger != nil {
		j.logger.Info(message, args...)
	}
}

func (j Journal[E]) logError(message string, args ...any) {
	if j.logger != nil {
		j.logger.Error(message, args...)
	}
}

// durationToMilliseconds converts a duration to milliseconds as float64 with sub-millisecond precision.
func durationToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

var _ observed.PostListener[int] = Journal[int]{}
