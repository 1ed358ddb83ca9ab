// Command journaled demonstrates an observed Set whose modifications are validated by a
// pre listener, journaled to PostgreSQL and logged by the instrumented handler.
// Afterwards the journal is read back and replayed into a fresh Set.
//
// It expects the collection_journal table described in package journal.
// Configure it with JOURNAL_POSTGRES_DSN and ADAPTER_TYPE (pgx.pool, sql.db, sqlx.db).
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AntonStoeckl/observed-collections-go/containers"
	"github.com/AntonStoeckl/observed-collections-go/example/shared/config"
	"github.com/AntonStoeckl/observed-collections-go/journal"
	"github.com/AntonStoeckl/observed-collections-go/observed"
	"github.com/AntonStoeckl/observed-collections-go/observed/instrumented"
)

const appendTimeout = 2 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if err := run(ctx, logger); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	collectionID := uuid.New()

	j, closeDB, err := newJournal(ctx, collectionID,
		journal.WithLogger(logger),
		journal.WithContext(ctx),
		journal.WithAppendTimeout(appendTimeout),
	)
	if err != nil {
		return fmt.Errorf("creating journal: %w", err)
	}
	defer closeDB()

	standard := observed.NewStandardHandler[string]()
	standard.AddPreListener(observed.PreListenerFunc[string](rejectBlankTags))
	standard.AddPostListener(j)

	handler, err := instrumented.NewHandler[string](
		standard,
		instrumented.WithLogger[string](logger),
		instrumented.WithContext[string](ctx),
	)
	if err != nil {
		return err
	}

	tags, err := observed.WrapWith[string](containers.NewSet[string](), handler, observed.WithLogger[string](logger))
	if err != nil {
		return err
	}

	if _, err := tags.AddAll([]string{"go", "postgres", "journal"}); err != nil {
		return err
	}

	if _, err := tags.Add("   "); err != nil {
		return err
	}

	if _, err := tags.Remove("postgres"); err != nil {
		return err
	}

	if _, err := tags.RemoveIf(func(tag string) bool { return strings.HasPrefix(tag, "j") }); err != nil {
		return err
	}

	entries, err := j.Entries(ctx)
	if err != nil {
		return err
	}

	restored := containers.NewSet[string]()
	if err := journal.Replay[string](entries, restored); err != nil {
		return err
	}

	logger.Info("journal replayed",
		"collection_id", collectionID.String(),
		"entries", len(entries),
		"live", tags.Len(),
		"restored", restored.Elements(),
	)

	return nil
}

func rejectBlankTags(event observed.ModificationEvent[string]) error {
	if event.Type != observed.EventTypeAdd && event.Type != observed.EventTypeAddAll {
		return nil
	}

	for _, tag := range event.Elements {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("blank tag: %w", observed.ErrVetoed)
		}
	}

	return nil
}

func newJournal(ctx context.Context, collectionID uuid.UUID, options ...journal.Option) (journal.Journal[string], func(), error) {
	adapterType, err := config.Adapter()
	if err != nil {
		return journal.Journal[string]{}, nil, err
	}

	switch adapterType {
	case config.AdapterSQLDB:
		db, err := config.PostgresSQLDB(ctx)
		if err != nil {
			return journal.Journal[string]{}, nil, err
		}

		j, err := journal.NewJournalFromSQLDB[string](db, collectionID, options...)

		return j, func() { _ = db.Close() }, err

	case config.AdapterSQLXDB:
		db, err := config.PostgresSQLX(ctx)
		if err != nil {
			return journal.Journal[string]{}, nil, err
		}

		j, err := journal.NewJournalFromSQLX[string](db, collectionID, options...)

		return j, func() { _ = db.Close() }, err

	default:
		poolConfig, err := config.PostgresPGXPoolConfig()
		if err != nil {
			return journal.Journal[string]{}, nil, err
		}

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return journal.Journal[string]{}, nil, err
		}

		j, err := journal.NewJournalFromPGXPool[string](pool, collectionID, options...)

		return j, pool.Close, err
	}
}
