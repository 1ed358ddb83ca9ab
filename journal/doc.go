// Package journal persists the modifications of an observed collection to PostgreSQL
// and replays them into a container.
//
// A Journal is a PostListener: every committed modification is appended as one row.
// It can be created from a pgx pool, a database/sql DB or a sqlx DB; the SQL is built
// with goqu for the postgres dialect and the elements are stored as a JSON array.
//
// The table is expected to look like this:
//
//	CREATE TABLE collection_journal (
//		sequence_number BIGSERIAL PRIMARY KEY,
//		collection_id   UUID        NOT NULL,
//		event_type      TEXT        NOT NULL,
//		elements        JSONB       NOT NULL,
//		changed         BOOLEAN     NOT NULL,
//		pre_size        INTEGER     NOT NULL,
//		post_size       INTEGER     NOT NULL,
//		occurred_at     TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//	CREATE INDEX collection_journal_collection_idx ON collection_journal (collection_id, sequence_number);
//
// Usage:
//
//	j, err := journal.NewJournalFromPGXPool[string](pool, collectionID, journal.WithAppendTimeout(time.Second))
//	coll, err := observed.WrapWith[string](containers.NewSet[string](), j)
//
//	entries, err := j.Entries(ctx)
//	restored := containers.NewSet[string]()
//	err = journal.Replay[string](entries, restored)
package journal
