package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	PokeAPI  PokeAPIConfig  `mapstructure:"pokeapi"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Export   ExportConfig   `mapstructure:"export"`
	Log      LogConfig      `mapstructure:"log"`
}

// PokeAPIConfig holds PokeAPI transport configuration
type PokeAPIConfig struct {
	BaseURL              string   `mapstructure:"base_url"`
	UserAgent            string   `mapstructure:"user_agent"`
	Timeout              int      `mapstructure:"timeout"`
	MaxRetries           int      `mapstructure:"max_retries"`
	RetryWait            int      `mapstructure:"retry_wait"`
	MaxWorkers           int      `mapstructure:"max_workers"`
	MaxRequestsPerSecond int      `mapstructure:"max_requests_per_second"`
	BatchSize            int      `mapstructure:"batch_size"`
	CircuitBreakerDelay  int      `mapstructure:"circuit_breaker_delay"`
	Proxies              []string `mapstructure:"proxies"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// DSN renders the pgx connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	Password      string `mapstructure:"password"`
	Database      int    `mapstructure:"database"`
	KeyPrefix     string `mapstructure:"key_prefix"`
	ConsumerGroup string `mapstructure:"consumer_group"`
	MinIdleTime   int    `mapstructure:"min_idle_time"`
}

// Addr returns host:port for the redis client.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// ExportConfig controls the evolution chain export pipeline
type ExportConfig struct {
	FromChain    int `mapstructure:"from_chain"`
	ToChain      int `mapstructure:"to_chain"`
	SaveInterval int `mapstructure:"save_interval"`
	MaxRetries   int `mapstructure:"max_retries"`
	Workers      int `mapstructure:"workers"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from a YAML file with environment variable overrides.
// An empty path looks for config.yaml in the working directory. A missing file
// is not an error; defaults and environment values are used instead.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			log.Warnf("⚠️ config.yaml not found, using defaults")
		case path != "" && isMissingFile(err):
			log.Warnf("⚠️ config file %s not found, using defaults", path)
		default:
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects values the client and workers cannot run with.
func (c *Config) Validate() error {
	if c.PokeAPI.BaseURL == "" {
		return fmt.Errorf("pokeapi.base_url must not be empty")
	}
	if c.PokeAPI.MaxWorkers < 1 {
		return fmt.Errorf("pokeapi.max_workers must be positive, got %d", c.PokeAPI.MaxWorkers)
	}
	if c.PokeAPI.BatchSize < 1 {
		return fmt.Errorf("pokeapi.batch_size must be positive, got %d", c.PokeAPI.BatchSize)
	}
	if c.Export.ToChain != 0 && c.Export.ToChain < c.Export.FromChain {
		return fmt.Errorf("export.to_chain %d is before export.from_chain %d", c.Export.ToChain, c.Export.FromChain)
	}
	return nil
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || strings.Contains(err.Error(), "no such file or directory")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("pokeapi.base_url", "https://pokeapi.co/api/v2")
	v.SetDefault("pokeapi.user_agent", "pokedex-explorer/1.0")
	v.SetDefault("pokeapi.timeout", 10)
	v.SetDefault("pokeapi.max_retries", 3)
	v.SetDefault("pokeapi.retry_wait", 1)
	v.SetDefault("pokeapi.max_workers", 10)
	v.SetDefault("pokeapi.max_requests_per_second", 20)
	v.SetDefault("pokeapi.batch_size", 20)
	v.SetDefault("pokeapi.circuit_breaker_delay", 60)
	v.SetDefault("pokeapi.proxies", []string{})

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "pokedex")
	v.SetDefault("database.user", "pokedex_user")
	v.SetDefault("database.password", "pokedex_pass")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.key_prefix", "pokedex:")
	v.SetDefault("redis.consumer_group", "pokedex_exporter")
	v.SetDefault("redis.min_idle_time", 120)

	v.SetDefault("export.from_chain", 1)
	v.SetDefault("export.to_chain", 549)
	v.SetDefault("export.save_interval", 25)
	v.SetDefault("export.max_retries", 5)
	v.SetDefault("export.workers", 4)

	v.SetDefault("log.level", "info")
}
