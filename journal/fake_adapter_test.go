package journal_test

import (
	"context"
	"errors"
	"reflect"
	"sync"

	"github.com/AntonStoeckl/observed-collections-go/journal/internal/adapters"
)

// fakeDB records every statement and answers queries with preset rows.
type fakeDB struct {
	mu          sync.Mutex
	execs       []string
	queries     []string
	hadDeadline []bool
	rows        [][]any
	execErr     error
	queryErr    error
	rowsErr     error
}

func (f *fakeDB) Query(ctx context.Context, query string) (adapters.DBRows, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queries = append(f.queries, query)
	if f.queryErr != nil {
		return nil, f.queryErr
	}

	return &fakeRows{rows: f.rows, index: -1, err: f.rowsErr}, nil
}

func (f *fakeDB) Exec(ctx context.Context, query string) (adapters.DBResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, hasDeadline := ctx.Deadline()
	f.hadDeadline = append(f.hadDeadline, hasDeadline)
	f.execs = append(f.execs, query)

	if f.execErr != nil {
		return nil, f.execErr
	}

	return fakeResult(1), nil
}

type fakeRows struct {
	rows   [][]any
	index  int
	err    error
	closed bool
}

func (r *fakeRows) Next() bool {
	r.index++
	return r.index < len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.index]
	if len(row) != len(dest) {
		return errors.New("column count mismatch")
	}

	for i, value := range row {
		target := reflect.ValueOf(dest[i]).Elem()
		source := reflect.ValueOf(value)
		if !source.Type().AssignableTo(target.Type()) {
			return errors.New("cannot scan " + source.Type().String() + " into " + target.Type().String())
		}

		target.Set(source)
	}

	return nil
}

func (r *fakeRows) Err() error {
	return r.err
}

func (r *fakeRows) Close() error {
	r.closed = true
	return nil
}

type fakeResult int64

func (r fakeResult) RowsAffected() (int64, error) {
	return int64(r), nil
}
