package database

import (
	"context"
	"database/sql"

	"github.com/Konsultn-Engineering/sqlkit/cache"
	"github.com/Konsultn-Engineering/sqlkit/utils"
)

// SqlOption configures a SqlDatabase.
type SqlOption func(*SqlDatabase) error

// WithStatementCache prepares each distinct statement once and reuses it
// from an LRU of the given size.
func WithStatementCache(size int) SqlOption {
	return func(s *SqlDatabase) error {
		c, err := cache.NewStatementCache(size)
		if err != nil {
			return err
		}
		s.stmts = c
		return nil
	}
}

// SqlDatabase implements Database for *sql.DB.
type SqlDatabase struct {
	db    *sql.DB
	stmts *cache.StatementCache
}

func NewSqlDatabase(db *sql.DB, opts ...SqlOption) (*SqlDatabase, error) {
	s := &SqlDatabase{db: db}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// DB exposes the underlying pool.
func (s *SqlDatabase) DB() *sql.DB { return s.db }

func (s *SqlDatabase) QueryContext(ctx context.Context, query string, args ...any) (Rows, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if s.stmts != nil {
		var stmt *sql.Stmt
		stmt, err = s.stmts.GetOrPrepare(ctx, utils.FingerprintString(query), s.db, query)
		if err != nil {
			return nil, err
		}
		rows, err = stmt.QueryContext(ctx, args...)
	} else {
		rows, err = s.db.QueryContext(ctx, query, args...)
	}
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *SqlDatabase) ExecContext(ctx context.Context, query string, args ...any) (Result, error) {
	if s.stmts != nil {
		stmt, err := s.stmts.GetOrPrepare(ctx, utils.FingerprintString(query), s.db, query)
		if err != nil {
			return nil, err
		}
		return stmt.ExecContext(ctx, args...)
	}
	return s.db.ExecContext(ctx, query, args...)
}

func (s *SqlDatabase) PingContext(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases cached statements and then the pool.
func (s *SqlDatabase) Close() error {
	if s.stmts != nil {
		_ = s.stmts.Close()
	}
	return s.db.Close()
}

var _ Database = (*SqlDatabase)(nil)
