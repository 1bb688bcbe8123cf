package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	FollowsSourcePostgres = "postgres"
	FollowsSourceNeo4j    = "neo4j"
)

type Config struct {
	Environment string `toml:"-"`

	Host string `toml:"host"`
	Port int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// storage
	Storage        string `toml:"storage"`
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	ApplySchema    bool   `toml:"apply_schema"`

	// follow graph
	FollowsSource string `toml:"follows_source"`
	Neo4jURI      string `toml:"neo4j_uri"`
	Neo4jUser     string `toml:"neo4j_user"`
	Neo4jDatabase string `toml:"neo4j_database"`

	// sessions and rate limiting
	RedisHost            string `toml:"redis_host"`
	RedisPort            string `toml:"redis_port"`
	WriteRateLimitPerMin int    `toml:"write_rate_limit_per_min"`

	// browser origins allowed by CORS, besides the local frontends
	AllowedOrigins []string `toml:"allowed_origins"`

	// write quotas
	BlogsPerDay    int `toml:"blogs_per_day"`
	CommentsPerDay int `toml:"comments_per_day"`

	// user existence cache
	UserCacheSizeMB     int `toml:"user_cache_size_mb"`
	UserCacheTTLSeconds int `toml:"user_cache_ttl_seconds"`

	// fake data in memory storage mode
	MemorySeedUsers int `toml:"memory_seed_users"`

	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
}

type Toml struct {
	Development *Config
	Production  *Config
	DockerDev   *Config `toml:"dockerdev"`
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	case "ddev", "dockerdev":
		cfg = t.DockerDev
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

// Load reads the TOML file at path and returns the config for env,
// with defaults applied for the unset values.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}
	return fromToml(&t, env)
}

// Parse is like Load, but reads the config from a TOML string.
func Parse(env, data string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(data, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return fromToml(&t, env)
}

func fromToml(t *Toml, env string) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.Environment = strings.ToLower(env)
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.Storage == "" {
		c.Storage = StoragePostgres
	}
	if c.FollowsSource == "" {
		c.FollowsSource = FollowsSourcePostgres
	}
	if c.PostgresPort == "" {
		c.PostgresPort = "5432"
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.Neo4jUser == "" {
		c.Neo4jUser = "neo4j"
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
	if c.WriteRateLimitPerMin == 0 {
		c.WriteRateLimitPerMin = 30
	}
	if c.BlogsPerDay == 0 {
		c.BlogsPerDay = 2
	}
	if c.CommentsPerDay == 0 {
		c.CommentsPerDay = 3
	}
	if c.UserCacheSizeMB == 0 {
		c.UserCacheSizeMB = 8
	}
	if c.UserCacheTTLSeconds == 0 {
		c.UserCacheTTLSeconds = 600
	}
	if c.PrometheusMetricsHost == "" {
		c.PrometheusMetricsHost = "localhost"
	}
	if c.PrometheusMetricsPort == "" {
		c.PrometheusMetricsPort = "2112"
	}
}

func (c *Config) validate() error {
	switch c.Storage {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("unknown storage: %s", c.Storage)
	}

	switch c.FollowsSource {
	case FollowsSourcePostgres:
	case FollowsSourceNeo4j:
		if c.Neo4jURI == "" {
			return fmt.Errorf("follows source %s requires neo4j_uri", c.FollowsSource)
		}
	default:
		return fmt.Errorf("unknown follows source: %s", c.FollowsSource)
	}

	if c.Storage == StorageMemory && c.FollowsSource != FollowsSourcePostgres {
		return fmt.Errorf("memory storage reads follows from memory, follows_source must be left as %s", FollowsSourcePostgres)
	}

	if c.BlogsPerDay < 0 || c.CommentsPerDay < 0 {
		return fmt.Errorf("quota limits must be positive")
	}

	return nil
}
