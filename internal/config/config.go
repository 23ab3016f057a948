// Package config loads server settings from defaults, an optional config
// file, an optional .env file and BITESWIPE_* environment variables, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key when read from the environment,
// e.g. BITESWIPE_DB_DSN.
const EnvPrefix = "BITESWIPE"

type Config struct {
	Port            int           `mapstructure:"port"`
	DBDriver        string        `mapstructure:"db_driver"`
	DBDSN           string        `mapstructure:"db_dsn"`
	JWTSecret       string        `mapstructure:"jwt_secret"`
	TokenTTL        time.Duration `mapstructure:"token_ttl"`
	GroupTTL        time.Duration `mapstructure:"group_ttl"`
	OCCRetries      int           `mapstructure:"occ_retries"`
	CodeAttempts    int           `mapstructure:"code_attempts"`
	SweepInterval   time.Duration `mapstructure:"sweep_interval"`
	NSQDAddr        string        `mapstructure:"nsqd_addr"`
	NSQTopic        string        `mapstructure:"nsq_topic"`
	RestaurantsFile string        `mapstructure:"restaurants_file"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFormat       string        `mapstructure:"log_format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("db_dsn", "./data/biteswipe.db")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_ttl", "24h")
	v.SetDefault("group_ttl", "24h")
	v.SetDefault("occ_retries", 10)
	v.SetDefault("code_attempts", 10)
	v.SetDefault("sweep_interval", "0s")
	v.SetDefault("nsqd_addr", "")
	v.SetDefault("nsq_topic", "biteswipe.groups")
	v.SetDefault("restaurants_file", "")
	v.SetDefault("cors_origins", []string{"*"})
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// Load reads the configuration. A config file is read only when CONFIG_FILE
// is set; a missing .env file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
		slog.Debug("Loaded config file", "path", file)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that have no safe fallback.
func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("unsupported db_driver %q (want sqlite or postgres)", c.DBDriver))
	}
	if c.DBDSN == "" {
		errs = append(errs, errors.New("db_dsn is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("jwt_secret is required"))
	}
	if c.GroupTTL <= 0 {
		errs = append(errs, errors.New("group_ttl must be positive"))
	}
	if c.OCCRetries <= 0 {
		errs = append(errs, errors.New("occ_retries must be positive"))
	}
	if c.CodeAttempts <= 0 {
		errs = append(errs, errors.New("code_attempts must be positive"))
	}
	if c.SweepInterval < 0 {
		errs = append(errs, errors.New("sweep_interval must not be negative"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
