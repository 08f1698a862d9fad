package connector

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents database connection configuration.
type Config struct {
	Driver         string            `json:"driver" yaml:"driver"`
	Host           string            `json:"host" yaml:"host"`
	Port           int               `json:"port" yaml:"port"`
	Database       string            `json:"database" yaml:"database"`
	Username       string            `json:"username" yaml:"username"`
	Password       string            `json:"password" yaml:"password"`
	SSLMode        string            `json:"ssl_mode" yaml:"ssl_mode"`
	Params         map[string]string `json:"params" yaml:"params"`
	Pool           PoolConfig        `json:"pool" yaml:"pool"`
	StatementCache int               `json:"statement_cache" yaml:"statement_cache"`
	ConnectTimeout time.Duration     `json:"connect_timeout" yaml:"connect_timeout"`
	QueryTimeout   time.Duration     `json:"query_timeout" yaml:"query_timeout"`
	Retry          *RetryConfig      `json:"retry,omitempty" yaml:"retry,omitempty"`
}

// PoolConfig defines connection pool settings.
type PoolConfig struct {
	MaxOpen         int           `json:"max_open" yaml:"max_open"`
	MaxIdle         int           `json:"max_idle" yaml:"max_idle"`
	MaxLifetime     time.Duration `json:"max_lifetime" yaml:"max_lifetime"`
	MaxIdleTime     time.Duration `json:"max_idle_time" yaml:"max_idle_time"`
	HealthCheckFreq time.Duration `json:"health_check_freq" yaml:"health_check_freq"`
}

// RetryConfig defines connection retry behavior.
type RetryConfig struct {
	MaxRetries int           `json:"max_retries" yaml:"max_retries"`
	BaseDelay  time.Duration `json:"base_delay" yaml:"base_delay"`
	MaxDelay   time.Duration `json:"max_delay" yaml:"max_delay"`
	Backoff    float64       `json:"backoff" yaml:"backoff"`
}

// ClusterConfig defines a primary with read replicas.
type ClusterConfig struct {
	Primary       Config        `json:"primary" yaml:"primary"`
	Replicas      []Config      `json:"replicas" yaml:"replicas"`
	ReadStrategy  string        `json:"read_strategy" yaml:"read_strategy"`
	WriteStrategy string        `json:"write_strategy" yaml:"write_strategy"`
	FailoverDelay time.Duration `json:"failover_delay" yaml:"failover_delay"`
}

var (
	errHostRequired   = errors.New("host is required")
	errDriverRequired = errors.New("driver is required")
)

// LoadConfig reads a YAML connection config from path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("connector: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates a YAML connection config.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("connector: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadClusterConfig reads a YAML cluster config from path.
func LoadClusterConfig(path string) (ClusterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ClusterConfig{}, fmt.Errorf("connector: read config: %w", err)
	}
	var cc ClusterConfig
	if err := yaml.Unmarshal(data, &cc); err != nil {
		return ClusterConfig{}, fmt.Errorf("connector: parse config: %w", err)
	}
	if err := cc.ValidateCluster(); err != nil {
		return ClusterConfig{}, err
	}
	return cc, nil
}

// Validate checks the fields every provider relies on.
func (c Config) Validate() error {
	if c.Driver == "" {
		return fmt.Errorf("connector: %w", errDriverRequired)
	}
	if c.Host == "" {
		return fmt.Errorf("connector: %w", errHostRequired)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("connector: invalid port: %d", c.Port)
	}
	if c.Pool.MaxOpen < 0 || c.Pool.MaxIdle < 0 {
		return fmt.Errorf("connector: pool sizes must not be negative")
	}
	if c.StatementCache < 0 {
		return fmt.Errorf("connector: invalid statement cache size: %d", c.StatementCache)
	}
	if r := c.Retry; r != nil {
		if r.MaxRetries < 1 {
			return fmt.Errorf("connector: retry.max_retries must be at least 1")
		}
		if r.Backoff != 0 && r.Backoff < 1 {
			return fmt.Errorf("connector: retry.backoff must be >= 1, got %v", r.Backoff)
		}
	}
	return nil
}

// withPoolDefaults fills unset pool settings.
func (c Config) withPoolDefaults() Config {
	if c.Pool.MaxOpen <= 0 {
		c.Pool.MaxOpen = 10
	}
	if c.Pool.MaxIdle <= 0 {
		c.Pool.MaxIdle = 5
	}
	if c.Pool.MaxIdle > c.Pool.MaxOpen {
		c.Pool.MaxIdle = c.Pool.MaxOpen
	}
	if c.Pool.MaxLifetime == 0 {
		c.Pool.MaxLifetime = time.Hour
	}
	if c.Pool.MaxIdleTime == 0 {
		c.Pool.MaxIdleTime = 30 * time.Minute
	}
	return c
}

// ValidateCluster validates cluster configuration.
func (cc *ClusterConfig) ValidateCluster() error {
	if err := cc.Primary.Validate(); err != nil {
		return fmt.Errorf("primary: %w", err)
	}
	for i, r := range cc.Replicas {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("replica %d: %w", i, err)
		}
	}

	validStrategies := map[string]bool{
		"round_robin": true,
		"random":      true,
		"primary":     true,
	}

	if cc.ReadStrategy != "" && !validStrategies[cc.ReadStrategy] {
		return fmt.Errorf("invalid read strategy: %s", cc.ReadStrategy)
	}

	if cc.WriteStrategy != "" && cc.WriteStrategy != "primary" {
		return fmt.Errorf("invalid write strategy: %s (only 'primary' supported)", cc.WriteStrategy)
	}

	return nil
}
