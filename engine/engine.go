// Package engine binds statement builders to a database connection.
//
// Statements handed out by an Engine carry the dialect quoting rules and an
// executor, so they can be run directly:
//
//	e := engine.New(db, dialect.NewMySQLDialect())
//	res, err := e.Insert().Into("users").Set("name", "ann").Execute(ctx)
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Konsultn-Engineering/sqlkit/database"
	"github.com/Konsultn-Engineering/sqlkit/dialect"
	"github.com/Konsultn-Engineering/sqlkit/query"
	"github.com/Konsultn-Engineering/sqlkit/result"
)

const defaultSlowThreshold = 100 * time.Millisecond

type Engine struct {
	db            database.Database
	dialect       dialect.Dialect
	logger        *slog.Logger
	slowThreshold time.Duration
	interpolate   bool
	stats         QueryStats
}

type Option func(*Engine)

// WithLogger sets the logger used for statement logging. Statements are
// logged at Debug, failures at Error and slow statements at Warn.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithSlowThreshold sets the duration above which a statement counts as
// slow. Zero disables slow statement detection.
func WithSlowThreshold(d time.Duration) Option {
	return func(e *Engine) { e.slowThreshold = d }
}

// WithInterpolation makes every statement from the engine inline its
// parameters as dialect literals.
func WithInterpolation(on bool) Option {
	return func(e *Engine) { e.interpolate = on }
}

func New(db database.Database, d dialect.Dialect, opts ...Option) *Engine {
	e := &Engine{
		db:            db,
		dialect:       d,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		slowThreshold: defaultSlowThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) DB() database.Database   { return e.db }
func (e *Engine) Dialect() dialect.Dialect { return e.dialect }

// Stats returns a snapshot of the execution counters.
func (e *Engine) Stats() StatsSnapshot {
	return e.stats.Snapshot()
}

func (e *Engine) ResetStats() {
	e.stats.Reset()
}

func (e *Engine) options(x query.Executor) []query.Option {
	return []query.Option{
		query.WithDialect(e.dialect),
		query.WithInterpolation(e.interpolate),
		query.WithExecutor(x),
	}
}

// Insert returns an INSERT statement whose Execute yields a database.Result.
func (e *Engine) Insert() *query.Insert {
	return query.NewInsert(e.options(query.ExecutorFunc(e.execFunc))...)
}

func (e *Engine) Update() *query.Update {
	return query.NewUpdate(e.options(query.ExecutorFunc(e.execFunc))...)
}

func (e *Engine) Delete() *query.Delete {
	return query.NewDelete(e.options(query.ExecutorFunc(e.execFunc))...)
}

// Select returns a SELECT statement whose Execute yields a *result.Result.
func (e *Engine) Select(columns ...string) *query.Select {
	return query.NewSelect(e.options(query.ExecutorFunc(e.queryFunc))...).Columns(columns...)
}

// Exec renders stmt and runs it as a write.
func (e *Engine) Exec(ctx context.Context, stmt query.Statement) (database.Result, error) {
	sql, params, err := stmt.Render()
	if err != nil {
		return nil, err
	}
	return e.ExecRaw(ctx, sql, params...)
}

// Query renders stmt and runs it as a read.
func (e *Engine) Query(ctx context.Context, stmt query.Statement) (*result.Result, error) {
	sql, params, err := stmt.Render()
	if err != nil {
		return nil, err
	}
	return e.QueryRaw(ctx, sql, params...)
}

func (e *Engine) ExecRaw(ctx context.Context, sql string, params ...any) (database.Result, error) {
	start := time.Now()
	res, err := e.db.ExecContext(ctx, sql, params...)
	e.record(ctx, sql, params, start, err, false)
	if err != nil {
		return nil, fmt.Errorf("engine: exec: %w", err)
	}
	return res, nil
}

func (e *Engine) QueryRaw(ctx context.Context, sql string, params ...any) (*result.Result, error) {
	start := time.Now()
	rows, err := e.db.QueryContext(ctx, sql, params...)
	e.record(ctx, sql, params, start, err, true)
	if err != nil {
		return nil, fmt.Errorf("engine: query: %w", err)
	}
	return result.New(rows), nil
}

func (e *Engine) execFunc(ctx context.Context, sql string, params []any) (any, error) {
	return e.ExecRaw(ctx, sql, params...)
}

func (e *Engine) queryFunc(ctx context.Context, sql string, params []any) (any, error) {
	res, err := e.QueryRaw(ctx, sql, params...)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (e *Engine) Ping(ctx context.Context) error {
	return e.db.PingContext(ctx)
}

func (e *Engine) Close() error {
	return e.db.Close()
}

func (e *Engine) record(ctx context.Context, sql string, params []any, start time.Time, err error, isQuery bool) {
	duration := time.Since(start)
	if isQuery {
		e.stats.TotalQueries.Add(1)
	} else {
		e.stats.TotalExecs.Add(1)
	}
	e.stats.TotalDuration.Add(int64(duration))

	attrs := []any{"sql", sql, "params", params, "duration", duration}
	if err != nil {
		e.stats.Errors.Add(1)
		e.logger.ErrorContext(ctx, "statement failed", append(attrs, "error", err)...)
		return
	}
	if e.slowThreshold > 0 && duration > e.slowThreshold {
		e.stats.SlowQueries.Add(1)
		e.logger.WarnContext(ctx, "slow statement", attrs...)
		return
	}
	e.logger.DebugContext(ctx, "statement", attrs...)
}
