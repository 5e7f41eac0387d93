// Package drivertest in-memory doubles of the driver interfaces for repository tests
package drivertest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/pot-code/skillspark/internal/infrastructure/driver"
)

// Statement a recorded call
type Statement struct {
	Query string
	Args  []interface{}
}

// QueryFunc produce the result of a query
type QueryFunc func(query string, args []interface{}) (*Rows, error)

// ExecFunc produce the result of an exec
type ExecFunc func(query string, args []interface{}) (sql.Result, error)

// FakeDB driver.ITransactionalDB that records statements and answers with stubs
type FakeDB struct {
	OnQuery QueryFunc
	OnExec  ExecFunc
	PingErr error

	mu         sync.Mutex
	Queries    []Statement
	Execs      []Statement
	Committed  bool
	RolledBack bool
}

var _ driver.ITransactionalDB = &FakeDB{}

// ExecContext implement driver.ITransactionalDB
func (db *FakeDB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	db.mu.Lock()
	db.Execs = append(db.Execs, Statement{query, args})
	db.mu.Unlock()

	if db.OnExec == nil {
		return Result(1), nil
	}
	return db.OnExec(query, args)
}

// QueryContext implement driver.ITransactionalDB
func (db *FakeDB) QueryContext(ctx context.Context, query string, args ...interface{}) (driver.ISQLRows, error) {
	db.mu.Lock()
	db.Queries = append(db.Queries, Statement{query, args})
	db.mu.Unlock()

	if db.OnQuery == nil {
		return NewRows(), nil
	}
	rows, err := db.OnQuery(query, args)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// BeginTx the fake is its own transaction
func (db *FakeDB) BeginTx(ctx context.Context, opts *driver.TxOptions) (driver.ITransactionalDB, error) {
	return db, nil
}

// Commit implement driver.ITransactionalDB
func (db *FakeDB) Commit(ctx context.Context) error {
	db.Committed = true
	return nil
}

// Rollback implement driver.ITransactionalDB
func (db *FakeDB) Rollback(ctx context.Context) error {
	db.RolledBack = true
	return nil
}

// Close implement driver.ITransactionalDB
func (db *FakeDB) Close(ctx context.Context) error {
	return nil
}

// Ping implement driver.ITransactionalDB
func (db *FakeDB) Ping(ctx context.Context) error {
	return db.PingErr
}

// Rows driver.ISQLRows over fixed values
type Rows struct {
	values [][]interface{}
	cursor int
	Closed bool
}

var _ driver.ISQLRows = &Rows{}

// NewRows each argument is one row
func NewRows(values ...[]interface{}) *Rows {
	return &Rows{values: values, cursor: -1}
}

// Next implement driver.ISQLRows
func (r *Rows) Next() bool {
	r.cursor++
	return r.cursor < len(r.values)
}

// Scan supports the column types used by the repositories
func (r *Rows) Scan(dest ...interface{}) error {
	if r.cursor < 0 || r.cursor >= len(r.values) {
		return errors.New("scan called without a row")
	}
	row := r.values[r.cursor]
	if len(row) != len(dest) {
		return fmt.Errorf("expected %d destination arguments in Scan, not %d", len(row), len(dest))
	}
	for i, v := range row {
		if err := assign(dest[i], v); err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
	}
	return nil
}

// Err implement driver.ISQLRows
func (r *Rows) Err() error {
	return nil
}

// Close implement driver.ISQLRows
func (r *Rows) Close() error {
	r.Closed = true
	return nil
}

func assign(dest, src interface{}) error {
	switch d := dest.(type) {
	case *string:
		if s, ok := src.(string); ok {
			*d = s
			return nil
		}
	case *int:
		if n, ok := src.(int); ok {
			*d = n
			return nil
		}
	case *int64:
		if n, ok := src.(int64); ok {
			*d = n
			return nil
		}
	case *bool:
		if b, ok := src.(bool); ok {
			*d = b
			return nil
		}
	}
	return fmt.Errorf("unsupported scan, storing %T into %T", src, dest)
}

// Result sql.Result reporting n affected rows
type Result int64

// LastInsertId implement sql.Result
func (r Result) LastInsertId() (int64, error) {
	return 0, nil
}

// RowsAffected implement sql.Result
func (r Result) RowsAffected() (int64, error) {
	return int64(r), nil
}
