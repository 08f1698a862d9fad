package connector

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/Konsultn-Engineering/sqlkit/database"
	"github.com/Konsultn-Engineering/sqlkit/dialect"
)

// Cluster is a primary connection with read replicas. Writes always go to
// the primary.
type Cluster struct {
	config   ClusterConfig
	primary  Connection
	replicas []Connection
	mu       sync.Mutex
	readIdx  int
}

// OpenCluster connects the primary and every replica. On failure every
// connection opened so far is closed.
func OpenCluster(ctx context.Context, cfg ClusterConfig) (*Cluster, error) {
	if err := cfg.ValidateCluster(); err != nil {
		return nil, err
	}

	primary, err := Open(ctx, cfg.Primary)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to primary: %w", err)
	}

	replicas := make([]Connection, 0, len(cfg.Replicas))
	for i, replicaCfg := range cfg.Replicas {
		replica, err := Open(ctx, replicaCfg)
		if err != nil {
			_ = primary.Close()
			for _, r := range replicas {
				_ = r.Close()
			}
			return nil, fmt.Errorf("failed to connect to replica %d: %w", i, err)
		}
		replicas = append(replicas, replica)
	}

	return NewCluster(cfg, primary, replicas...), nil
}

// NewCluster assembles a cluster from already open connections.
func NewCluster(cfg ClusterConfig, primary Connection, replicas ...Connection) *Cluster {
	return &Cluster{config: cfg, primary: primary, replicas: replicas}
}

func (c *Cluster) Primary() Connection {
	return c.primary
}

func (c *Cluster) Replicas() []Connection {
	return append([]Connection(nil), c.replicas...)
}

// Read picks a connection for reads using the configured strategy.
func (c *Cluster) Read() Connection {
	if len(c.replicas) == 0 {
		return c.primary
	}

	switch c.config.ReadStrategy {
	case "random":
		return c.replicas[rand.Intn(len(c.replicas))]
	case "round_robin":
		c.mu.Lock()
		idx := c.readIdx % len(c.replicas)
		c.readIdx++
		c.mu.Unlock()
		return c.replicas[idx]
	default:
		return c.primary
	}
}

func (c *Cluster) Write() Connection {
	return c.primary
}

func (c *Cluster) Database() database.Database {
	return c.primary.Database()
}

func (c *Cluster) Dialect() dialect.Dialect {
	return c.primary.Dialect()
}

func (c *Cluster) Health(ctx context.Context) error {
	if err := c.primary.Health(ctx); err != nil {
		return fmt.Errorf("primary health check failed: %w", err)
	}
	for i, replica := range c.replicas {
		if err := replica.Health(ctx); err != nil {
			return fmt.Errorf("replica %d health check failed: %w", i, err)
		}
	}
	return nil
}

// Stats sums pool statistics across the cluster.
func (c *Cluster) Stats() ConnectionStats {
	stats := c.primary.Stats()
	for _, replica := range c.replicas {
		stats = stats.add(replica.Stats())
	}
	return stats
}

func (c *Cluster) Close() error {
	var lastErr error
	if err := c.primary.Close(); err != nil {
		lastErr = err
	}
	for _, replica := range c.replicas {
		if err := replica.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

var _ Connection = (*Cluster)(nil)
