package connector

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Konsultn-Engineering/sqlkit/database"
	"github.com/Konsultn-Engineering/sqlkit/dialect"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

const defaultPostgresPort = 5432

var errNotConnected = errors.New("not connected")

func init() {
	p := &postgresProvider{}
	Register("postgres", p)
	Register("pgx", p)
}

type postgresProvider struct{}

func (p *postgresProvider) Dialect() dialect.Dialect {
	return dialect.NewPostgresDialect()
}

func (p *postgresProvider) Connect(ctx context.Context, cfg Config) (Connection, error) {
	poolCfg, err := postgresPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connector: postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connector: postgres ping: %w", err)
	}

	return &PostgresConnection{pool: pool, dialect: p.Dialect()}, nil
}

// postgresDSN creates a PostgreSQL connection URL.
func postgresDSN(cfg Config) (string, error) {
	port := cfg.Port
	if port == 0 {
		port = defaultPostgresPort
	}
	b := NewDSNBuilder("postgres").
		Auth(cfg.Username, cfg.Password).
		Host(cfg.Host, port).
		Database(cfg.Database).
		Param("sslmode", cfg.SSLMode).
		Params(cfg.Params).
		WithPostgresDefaults()
	if err := b.Validate(); err != nil {
		return "", fmt.Errorf("connector: postgres: %w", err)
	}
	return b.Build(), nil
}

func postgresPoolConfig(cfg Config) (*pgxpool.Config, error) {
	dsn, err := postgresDSN(cfg)
	if err != nil {
		return nil, err
	}
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("connector: postgres: %w", err)
	}

	cfg = cfg.withPoolDefaults()
	poolCfg.MaxConns = int32(cfg.Pool.MaxOpen)
	poolCfg.MinConns = int32(cfg.Pool.MaxIdle)
	poolCfg.MaxConnLifetime = cfg.Pool.MaxLifetime
	poolCfg.MaxConnIdleTime = cfg.Pool.MaxIdleTime
	if cfg.Pool.HealthCheckFreq > 0 {
		poolCfg.HealthCheckPeriod = cfg.Pool.HealthCheckFreq
	}
	return poolCfg, nil
}

// PostgresConnection is a pgx pool.
type PostgresConnection struct {
	pool    *pgxpool.Pool
	dialect dialect.Dialect
}

// Database returns the pool behind the engine-facing interface.
func (p *PostgresConnection) Database() database.Database {
	return database.NewPgxDatabase(p.pool)
}

// DB opens a database/sql handle sharing the pool.
func (p *PostgresConnection) DB() *sql.DB {
	return stdlib.OpenDBFromPool(p.pool)
}

func (p *PostgresConnection) Dialect() dialect.Dialect {
	return p.dialect
}

func (p *PostgresConnection) Health(ctx context.Context) error {
	if p.pool == nil {
		return errNotConnected
	}
	return p.pool.Ping(ctx)
}

func (p *PostgresConnection) Stats() ConnectionStats {
	if p.pool == nil {
		return ConnectionStats{}
	}
	s := p.pool.Stat()
	return ConnectionStats{
		OpenConnections: int(s.TotalConns()),
		InUse:           int(s.AcquiredConns()),
		Idle:            int(s.IdleConns()),
	}
}

func (p *PostgresConnection) Close() error {
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
	return nil
}
