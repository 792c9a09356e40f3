package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/ilyakaznacheev/cleanenv"

	"supply-chain-cli/internal/apperrors"
)

// DefaultPath is read when SUPPLYCHAIN_CONFIG is not set.
const DefaultPath = "config.yaml"

// Config holds all configuration for the supply chain client.
// Values come from an optional YAML file; environment variables always
// override YAML, so DB_PASS can keep the password out of the file.
type Config struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"warn"`

	Database DatabaseConfig `yaml:"database"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Redis    RedisConfig    `yaml:"redis"`
}

// DatabaseConfig holds the five MySQL connection values.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"3306"`
	User     string `yaml:"user" env:"DB_USER" env-default:"root"`
	Password string `yaml:"password" env:"DB_PASS"`
	Database string `yaml:"database" env:"DB_NAME"`
}

// KafkaConfig enables write events when at least one broker is set.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"supply-chain-events"`
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// RedisConfig enables the write audit trail when Addr is set.
type RedisConfig struct {
	Addr       string `yaml:"addr" env:"REDIS_ADDR"`
	AuditKey   string `yaml:"audit_key" env:"REDIS_AUDIT_KEY" env-default:"supply-chain:audit"`
	AuditLimit int64  `yaml:"audit_limit" env:"REDIS_AUDIT_LIMIT" env-default:"100"`
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// Path returns the config file location, honoring SUPPLYCHAIN_CONFIG.
func Path() string {
	if p := os.Getenv("SUPPLYCHAIN_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads the YAML file at path when it exists, applies environment
// overrides and validates the result. A missing file is not an error:
// configuration then comes from the environment alone.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("%w: failed to read %s: %w", apperrors.ErrInvalidConfig, path, err)
		}
	case errors.Is(statErr, os.ErrNotExist):
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("%w: failed to read environment: %w", apperrors.ErrInvalidConfig, err)
		}
	default:
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidConfig, statErr)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every connection value needed to reach MySQL is present.
func (c *Config) Validate() error {
	db := c.Database
	switch {
	case db.Host == "":
		return fmt.Errorf("%w: database host is required", apperrors.ErrInvalidConfig)
	case db.Port <= 0 || db.Port > 65535:
		return fmt.Errorf("%w: database port %d out of range", apperrors.ErrInvalidConfig, db.Port)
	case db.User == "":
		return fmt.Errorf("%w: database user is required", apperrors.ErrInvalidConfig)
	case db.Database == "":
		return fmt.Errorf("%w: database name is required (set DB_NAME or database.database)", apperrors.ErrInvalidConfig)
	}
	if c.Redis.Enabled() && c.Redis.AuditLimit <= 0 {
		return fmt.Errorf("%w: redis audit_limit must be positive", apperrors.ErrInvalidConfig)
	}
	return nil
}

// DSN formats a go-sql-driver/mysql data source name.
func (d DatabaseConfig) DSN() string {
	mc := mysql.NewConfig()
	mc.User = d.User
	mc.Passwd = d.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
	mc.DBName = d.Database
	return mc.FormatDSN()
}

// Redacted describes the target without the password, for logs.
func (d DatabaseConfig) Redacted() string {
	return fmt.Sprintf("%s@%s/%s", d.User, net.JoinHostPort(d.Host, strconv.Itoa(d.Port)), d.Database)
}
