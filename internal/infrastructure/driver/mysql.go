package driver

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// MySQLDuplicateEntry mysql error number of unique key violation
const MySQLDuplicateEntry = 1062

// SQLWrapper Wraps a *sql.db object and provides the implementation of ITransactionalDB.
type SQLWrapper struct {
	db *sql.DB
}

// SQLWrapperTx transaction wrapper
type SQLWrapperTx struct {
	tx *sql.Tx
}

var (
	_ ITransactionalDB = &SQLWrapper{}
	_ ITransactionalDB = &SQLWrapperTx{}
)

// NewMySQLConn Returns a MySQL connection pool
func NewMySQLConn(dsn string, cfg *DBConfig) (ITransactionalDB, error) {
	conn, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(int(cfg.MaxConn))
	return &SQLWrapper{conn}, nil
}

// IsMySQLDuplicateEntry check err is caused by unique key violation
func IsMySQLDuplicateEntry(err error) bool {
	if v, ok := err.(*mysql.MySQLError); ok {
		return v.Number == MySQLDuplicateEntry
	}
	return false
}

// BeginTx start a new transaction context
func (mw *SQLWrapper) BeginTx(ctx context.Context, opts *TxOptions) (ITransactionalDB, error) {
	startTime := time.Now()
	tx, err := mw.db.BeginTx(ctx, mysqlTxOptionAdapter(opts))
	traceStatement(ctx, "BeginTx", "", nil, startTime, err)
	if err != nil {
		return nil, err
	}
	return &SQLWrapperTx{tx}, nil
}

func mysqlTxOptionAdapter(opts *TxOptions) *sql.TxOptions {
	if opts == nil {
		return nil
	}
	return &sql.TxOptions{
		Isolation: opts.Isolation,
		ReadOnly:  opts.AccessMode == AccessReadOnly,
	}
}

func (mw *SQLWrapper) Commit(ctx context.Context) error {
	return nil
}

func (mw *SQLWrapper) Rollback(ctx context.Context) error {
	return nil
}

func (mw *SQLWrapper) Close(ctx context.Context) error {
	return mw.db.Close()
}

func (mw *SQLWrapper) Ping(ctx context.Context) error {
	return mw.db.PingContext(ctx)
}

func (mw *SQLWrapper) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	startTime := time.Now()
	query = mysqlAdapter(query)
	res, err := mw.db.ExecContext(ctx, query, args...)
	traceStatement(ctx, "Exec", query, args, startTime, err)
	return res, err
}

func (mw *SQLWrapper) QueryContext(ctx context.Context, query string, args ...interface{}) (ISQLRows, error) {
	startTime := time.Now()
	query = mysqlAdapter(query)
	rows, err := mw.db.QueryContext(ctx, query, args...)
	traceStatement(ctx, "Query", query, args, startTime, err)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (mwt *SQLWrapperTx) BeginTx(ctx context.Context, opts *TxOptions) (ITransactionalDB, error) {
	return nil, ErrNestedTransaction
}

func (mwt *SQLWrapperTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	startTime := time.Now()
	query = mysqlAdapter(query)
	res, err := mwt.tx.ExecContext(ctx, query, args...)
	traceStatement(ctx, "Exec", query, args, startTime, err)
	return res, err
}

func (mwt *SQLWrapperTx) QueryContext(ctx context.Context, query string, args ...interface{}) (ISQLRows, error) {
	startTime := time.Now()
	query = mysqlAdapter(query)
	rows, err := mwt.tx.QueryContext(ctx, query, args...)
	traceStatement(ctx, "Query", query, args, startTime, err)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (mwt *SQLWrapperTx) Commit(ctx context.Context) error {
	startTime := time.Now()
	err := mwt.tx.Commit()
	traceStatement(ctx, "Commit", "", nil, startTime, err)
	return err
}

func (mwt *SQLWrapperTx) Rollback(ctx context.Context) error {
	startTime := time.Now()
	err := mwt.tx.Rollback()
	traceStatement(ctx, "Rollback", "", nil, startTime, err)
	return err
}

func (mwt *SQLWrapperTx) Close(ctx context.Context) error {
	return nil
}

func (mwt *SQLWrapperTx) Ping(ctx context.Context) error {
	return nil
}

func mysqlAdapter(query string) string {
	query = strings.Replace(query, "\"", "`", -1)
	query = DollarPlaceholderPattern.ReplaceAllString(query, "?")
	query = SpacePattern.ReplaceAllString(query, " ")
	return strings.TrimSpace(query)
}
