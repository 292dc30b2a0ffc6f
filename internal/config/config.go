package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Season   string         `mapstructure:"season"`
	Database DatabaseConfig `mapstructure:"database"`
	Client   ClientConfig   `mapstructure:"client"`
	Ingest   IngestConfig   `mapstructure:"ingest"`
	Steps    []StepConfig   `mapstructure:"steps"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite or postgres
	Path   string `mapstructure:"path"`   // sqlite file path
	DSN    string `mapstructure:"dsn"`    // postgres connection string

	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// ClientConfig is the single authoritative surface for every rate-limit
// and retry constant; components never carry their own copies.
type ClientConfig struct {
	BaseURL            string        `mapstructure:"base_url"`
	MinRequestInterval time.Duration `mapstructure:"min_request_interval"`
	RequestJitter      time.Duration `mapstructure:"request_jitter"`
	Timeout            time.Duration `mapstructure:"timeout"`
	MaxRetries         int           `mapstructure:"max_retries"`
	BackoffBase        time.Duration `mapstructure:"backoff_base"`
	BackoffFactor      float64       `mapstructure:"backoff_factor"`
	BackoffCap         time.Duration `mapstructure:"backoff_cap"`
	JitterMin          time.Duration `mapstructure:"jitter_min"`
	JitterMax          time.Duration `mapstructure:"jitter_max"`
}

type IngestConfig struct {
	Workers       int           `mapstructure:"workers"`
	BatchSize     int           `mapstructure:"batch_size"`
	FlushInterval time.Duration `mapstructure:"flush_interval"`
	QueueCapacity int           `mapstructure:"queue_capacity"`
}

// StepConfig is one entry of the declarative ordered step list. The step
// registry supplies the run function and defaults; the config controls
// order, enablement, and the idempotency threshold. Disabled steps stay
// visible in the list rather than being deleted.
type StepConfig struct {
	Name         string `mapstructure:"name"`
	Enabled      bool   `mapstructure:"enabled"`
	RowThreshold int64  `mapstructure:"row_threshold"`
	Force        bool   `mapstructure:"force"`
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for deployment overrides
	v.BindEnv("season", "SEASON")
	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.path", "DB_PATH")
	v.BindEnv("database.dsn", "DB_DSN")
	v.BindEnv("client.base_url", "STATS_BASE_URL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if len(cfg.Steps) == 0 {
		cfg.Steps = DefaultSteps()
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("season", "2024-25")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/nba_stats.db")
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.max_open_conns", 4)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("client.base_url", "https://stats.nba.com/stats")
	v.SetDefault("client.min_request_interval", 3*time.Second)
	v.SetDefault("client.request_jitter", 2*time.Second)
	v.SetDefault("client.timeout", 45*time.Second)
	v.SetDefault("client.max_retries", 10)
	v.SetDefault("client.backoff_base", 2*time.Second)
	v.SetDefault("client.backoff_factor", 2.0)
	v.SetDefault("client.backoff_cap", 300*time.Second)
	v.SetDefault("client.jitter_min", 250*time.Millisecond)
	v.SetDefault("client.jitter_max", 1500*time.Millisecond)

	v.SetDefault("ingest.workers", 4)
	v.SetDefault("ingest.batch_size", 100)
	v.SetDefault("ingest.flush_interval", 5*time.Second)
	v.SetDefault("ingest.queue_capacity", 10000)
}

// DefaultSteps returns the canonical ordered step list. Later steps
// assume earlier steps' tables are populated, so the order is part of
// the contract, not a preference.
func DefaultSteps() []StepConfig {
	return []StepConfig{
		{Name: "teams", Enabled: true, RowThreshold: 30},
		{Name: "players", Enabled: true, RowThreshold: 400},
		{Name: "player_positions", Enabled: true, RowThreshold: 50},
		{Name: "player_raw_stats", Enabled: true, RowThreshold: 100},
		{Name: "player_advanced_stats", Enabled: true, RowThreshold: 100},
		{Name: "player_shot_locations", Enabled: true, RowThreshold: 100},
		{Name: "player_tracking", Enabled: true, RowThreshold: 100},
		{Name: "team_stats", Enabled: true, RowThreshold: 30},
	}
}
