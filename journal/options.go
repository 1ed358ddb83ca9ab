package journal

import (
	"context"
	"time"

	"github.com/AntonStoeckl/observed-collections-go/observed"
)

// Option defines a functional option for configuring a Journal.
type Option func(*settings) error

type settings struct {
	tableName     string
	logger        observed.Logger
	ctx           context.Context
	appendTimeout time.Duration
	changedOnly   bool
}

func defaultSettings() settings {
	return settings{
		tableName: defaultTableName,
		ctx:       context.Background(),
	}
}

// WithTableName sets the table the Journal reads and writes.
func WithTableName(tableName string) Option {
	return func(s *settings) error {
		if tableName == "" {
			return ErrEmptyTableName
		}

		s.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Journal.
// The logger will receive messages at different levels:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: entry counts and durations
// Warn level: non-critical issues like cleanup failures
// Error level: failures that make an append or a query fail.
func WithLogger(logger observed.Logger) Option {
	return func(s *settings) error {
		s.logger = logger
		return nil
	}
}

// WithContext sets the context appends run in.
// Post hooks carry no context, so cancellation of appends is controlled here.
func WithContext(ctx context.Context) Option {
	return func(s *settings) error {
		if ctx == nil {
			return observed.ErrInvalidArgument
		}

		s.ctx = ctx

		return nil
	}
}

// WithAppendTimeout bounds each append. Zero means no timeout.
func WithAppendTimeout(timeout time.Duration) Option {
	return func(s *settings) error {
		if timeout < 0 {
			return ErrInvalidAppendTimeout
		}

		s.appendTimeout = timeout

		return nil
	}
}

// WithChangedOnly makes the Journal skip modifications that did not change the collection.
func WithChangedOnly() Option {
	return func(s *settings) error {
		s.changedOnly = true
		return nil
	}
}
