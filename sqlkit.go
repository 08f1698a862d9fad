// Package sqlkit opens database connections and binds them to statement
// engines.
package sqlkit

import (
	"context"

	"github.com/Konsultn-Engineering/sqlkit/connector"
	"github.com/Konsultn-Engineering/sqlkit/engine"
)

// DB is an engine together with the connection it runs on.
type DB struct {
	*engine.Engine
	conn connector.Connection
}

// Open connects with cfg and returns an engine using the connection's
// dialect.
func Open(ctx context.Context, cfg connector.Config, opts ...engine.Option) (*DB, error) {
	conn, err := connector.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return Wrap(conn, opts...), nil
}

// Wrap binds an already open connection.
func Wrap(conn connector.Connection, opts ...engine.Option) *DB {
	return &DB{
		Engine: engine.New(conn.Database(), conn.Dialect(), opts...),
		conn:   conn,
	}
}

func (db *DB) Connection() connector.Connection {
	return db.conn
}

func (db *DB) Health(ctx context.Context) error {
	return db.conn.Health(ctx)
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// Cluster routes reads to replicas and writes to the primary, each through
// its own engine.
type Cluster struct {
	cluster *connector.Cluster
	engines map[connector.Connection]*engine.Engine
}

func OpenCluster(ctx context.Context, cfg connector.ClusterConfig, opts ...engine.Option) (*Cluster, error) {
	c, err := connector.OpenCluster(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return WrapCluster(c, opts...), nil
}

func WrapCluster(c *connector.Cluster, opts ...engine.Option) *Cluster {
	conns := append([]connector.Connection{c.Primary()}, c.Replicas()...)
	engines := make(map[connector.Connection]*engine.Engine, len(conns))
	for _, conn := range conns {
		engines[conn] = engine.New(conn.Database(), conn.Dialect(), opts...)
	}
	return &Cluster{cluster: c, engines: engines}
}

// Reader picks an engine according to the cluster read strategy.
func (c *Cluster) Reader() *engine.Engine {
	return c.engines[c.cluster.Read()]
}

func (c *Cluster) Writer() *engine.Engine {
	return c.engines[c.cluster.Write()]
}

// Stats sums the execution counters of every engine in the cluster.
func (c *Cluster) Stats() engine.StatsSnapshot {
	var total engine.StatsSnapshot
	for _, e := range c.engines {
		s := e.Stats()
		total.TotalQueries += s.TotalQueries
		total.TotalExecs += s.TotalExecs
		total.TotalDuration += s.TotalDuration
		total.SlowQueries += s.SlowQueries
		total.Errors += s.Errors
	}
	return total
}

func (c *Cluster) Close() error {
	return c.cluster.Close()
}
