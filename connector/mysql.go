package connector

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"

	"github.com/Konsultn-Engineering/sqlkit/database"
	"github.com/Konsultn-Engineering/sqlkit/dialect"
	"github.com/go-sql-driver/mysql"
)

const defaultMySQLPort = 3306

func init() {
	Register("mysql", &mysqlProvider{dialect: dialect.NewMySQLDialect()})
	Register("mariadb", &mysqlProvider{dialect: dialect.NewMySQLDialect()})
	Register("tidb", &mysqlProvider{dialect: dialect.NewTiDBDialect()})
}

type mysqlProvider struct {
	dialect dialect.Dialect
}

func (p *mysqlProvider) Dialect() dialect.Dialect {
	return p.dialect
}

func (p *mysqlProvider) Connect(ctx context.Context, cfg Config) (Connection, error) {
	mc, err := mysqlConfig(cfg)
	if err != nil {
		return nil, err
	}
	drv, err := mysql.NewConnector(mc)
	if err != nil {
		return nil, fmt.Errorf("connector: mysql: %w", err)
	}

	db := sql.OpenDB(drv)
	cfg = cfg.withPoolDefaults()
	db.SetMaxOpenConns(cfg.Pool.MaxOpen)
	db.SetMaxIdleConns(cfg.Pool.MaxIdle)
	db.SetConnMaxLifetime(cfg.Pool.MaxLifetime)
	db.SetConnMaxIdleTime(cfg.Pool.MaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connector: mysql ping: %w", err)
	}

	return newSQLConnection(db, p.dialect, cfg.StatementCache)
}

// mysqlConfig maps Config onto the driver's own config type.
func mysqlConfig(cfg Config) (*mysql.Config, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("connector: mysql: %w", errHostRequired)
	}
	port := cfg.Port
	if port == 0 {
		port = defaultMySQLPort
	}

	mc := mysql.NewConfig()
	mc.User = cfg.Username
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(port))
	mc.DBName = cfg.Database
	mc.ParseTime = true
	mc.Timeout = cfg.ConnectTimeout
	mc.ReadTimeout = cfg.QueryTimeout
	mc.WriteTimeout = cfg.QueryTimeout
	mc.TLSConfig = mysqlTLS(cfg.SSLMode)
	if len(cfg.Params) > 0 {
		mc.Params = make(map[string]string, len(cfg.Params))
		for k, v := range cfg.Params {
			mc.Params[k] = v
		}
	}
	return mc, nil
}

// mysqlTLS translates postgres style ssl modes into the driver's tls
// parameter. Unknown values are passed through as registered config names.
func mysqlTLS(mode string) string {
	switch mode {
	case "", "disable":
		return ""
	case "require", "verify-ca", "verify-full":
		return "true"
	case "prefer", "preferred", "allow":
		return "preferred"
	default:
		return mode
	}
}

// SQLConnection is a database/sql pool.
type SQLConnection struct {
	db      *sql.DB
	sdb     *database.SqlDatabase
	dialect dialect.Dialect
}

func newSQLConnection(db *sql.DB, d dialect.Dialect, cacheSize int) (*SQLConnection, error) {
	var opts []database.SqlOption
	if cacheSize > 0 {
		opts = append(opts, database.WithStatementCache(cacheSize))
	}
	sdb, err := database.NewSqlDatabase(db, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLConnection{db: db, sdb: sdb, dialect: d}, nil
}

func (c *SQLConnection) Database() database.Database {
	return c.sdb
}

func (c *SQLConnection) DB() *sql.DB {
	return c.db
}

func (c *SQLConnection) Dialect() dialect.Dialect {
	return c.dialect
}

func (c *SQLConnection) Health(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *SQLConnection) Stats() ConnectionStats {
	return statsFromDB(c.db.Stats())
}

func (c *SQLConnection) Close() error {
	return c.sdb.Close()
}
