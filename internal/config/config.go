// Package config loads server settings from a .env file, an optional YAML
// config file and SETTLEUP_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mmynk/settleup/internal/money"
)

// EnvPrefix is prepended to every environment variable, e.g. SETTLEUP_SERVER_PORT.
const EnvPrefix = "SETTLEUP"

// Config is the resolved server configuration.
type Config struct {
	Server     ServerConfig
	Metrics    MetricsConfig
	Database   DatabaseConfig
	Logging    LoggingConfig
	AMQP       AMQPConfig
	Settlement SettlementConfig
}

type ServerConfig struct {
	Port int
}

type MetricsConfig struct {
	Port int // 0 disables the metrics listener
}

type DatabaseConfig struct {
	Path string
}

type LoggingConfig struct {
	Level string
}

// AMQPConfig configures the change-event publisher. An empty URL disables it.
type AMQPConfig struct {
	URL      string
	Exchange string
}

type SettlementConfig struct {
	// Dust is the smallest balance or transfer the planner acts on.
	Dust money.Money
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("server.port", 8080)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("database.path", "./data/settleup.db")
	v.SetDefault("logging.level", "info")
	v.SetDefault("amqp.url", "")
	v.SetDefault("amqp.exchange", "settleup")
	v.SetDefault("settlement.dust", "0.01")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads .env (if present), then cfgFile (if set, else config.yaml in the
// working directory if present), then the environment.
func Load(cfgFile string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	return FromViper(v)
}

// FromViper resolves and validates a Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	dust, err := money.Parse(v.GetString("settlement.dust"))
	if err != nil {
		return nil, fmt.Errorf("invalid settlement.dust: %w", err)
	}

	cfg := &Config{
		Server:     ServerConfig{Port: v.GetInt("server.port")},
		Metrics:    MetricsConfig{Port: v.GetInt("metrics.port")},
		Database:   DatabaseConfig{Path: v.GetString("database.path")},
		Logging:    LoggingConfig{Level: strings.ToLower(v.GetString("logging.level"))},
		AMQP:       AMQPConfig{URL: v.GetString("amqp.url"), Exchange: v.GetString("amqp.exchange")},
		Settlement: SettlementConfig{Dust: dust},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Metrics.Port < 0 || c.Metrics.Port > 65535 {
		errs = append(errs, fmt.Errorf("metrics.port %d out of range", c.Metrics.Port))
	}
	if c.Metrics.Port != 0 && c.Metrics.Port == c.Server.Port {
		errs = append(errs, fmt.Errorf("metrics.port and server.port are both %d", c.Server.Port))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid logging.level %q", c.Logging.Level))
	}
	if c.AMQP.URL != "" && c.AMQP.Exchange == "" {
		errs = append(errs, errors.New("amqp.exchange is required when amqp.url is set"))
	}
	if c.Settlement.Dust <= 0 {
		errs = append(errs, fmt.Errorf("settlement.dust %s must be positive", c.Settlement.Dust))
	}
	return errors.Join(errs...)
}
