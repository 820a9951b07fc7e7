package config

import (
	"log/slog"
	"net"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"
)

const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

const (
	DefaultEndpoint      = "http://localhost:8000/metrics"
	DefaultPollInterval  = "2s"
	DefaultPollTimeout   = "1500ms"
	DefaultLogCapacity   = 40
	MaxEventLogCapacity  = 1000
	DefaultStatusAddress = ":9090"
)

type ServerConfig struct {
	Address     string `mapstructure:"address"`
	Environment string `mapstructure:"environment"`
}

type PollConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Interval string `mapstructure:"interval"`
	Timeout  string `mapstructure:"timeout"`
}

type EventLogConfig struct {
	Capacity int `mapstructure:"capacity"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type UIConfig struct {
	Headless bool `mapstructure:"headless"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Poll     PollConfig     `mapstructure:"poll"`
	EventLog EventLogConfig `mapstructure:"eventlog"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	UI       UIConfig       `mapstructure:"ui"`
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.environment", EnvDev)
	v.SetDefault("server.address", DefaultStatusAddress)
	v.SetDefault("poll.endpoint", DefaultEndpoint)
	v.SetDefault("poll.interval", DefaultPollInterval)
	v.SetDefault("poll.timeout", DefaultPollTimeout)
	v.SetDefault("eventlog.capacity", DefaultLogCapacity)
	v.SetDefault("logging.level", LogLevelInfo)
	v.SetDefault("logging.file", "dashboard.log")
	v.SetDefault("ui.headless", false)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("failed to read config file", slog.String("error", err.Error()))
			return nil, err
		}
		slog.Debug("config file not found, using defaults and environment variables")
	} else {
		slog.Debug("loaded config file", slog.String("file", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		slog.Error("failed to unmarshal config", slog.String("error", err.Error()))
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return nil, err
	}

	return &cfg, nil
}

// PollInterval returns the parsed poll interval. Validate guarantees it parses.
func (c *Config) PollInterval() time.Duration {
	d, _ := time.ParseDuration(c.Poll.Interval)
	return d
}

// PollTimeout returns the parsed per-fetch timeout.
func (c *Config) PollTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Poll.Timeout)
	return d
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Server,
			validation.Required,
			validation.By(func(value interface{}) error {
				sc, ok := value.(ServerConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a ServerConfig")
				}
				return validation.ValidateStruct(&sc,
					validation.Field(&sc.Environment,
						validation.Required,
						validation.In(EnvDev, EnvStaging, EnvProd),
					),
					validation.Field(&sc.Address,
						validation.Required,
						validation.By(validateHostPort),
					),
				)
			}),
		),
		validation.Field(&c.Logging,
			validation.Required,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LoggingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LoggingConfig")
				}
				return validation.ValidateStruct(&lc,
					validation.Field(&lc.Level,
						validation.Required,
						validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
					),
				)
			}),
		),
		validation.Field(&c.Poll,
			validation.Required,
			validation.By(validatePollConfig),
		),
		validation.Field(&c.EventLog,
			validation.Required,
			validation.By(func(value interface{}) error {
				ec, ok := value.(EventLogConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be an EventLogConfig")
				}
				return validation.ValidateStruct(&ec,
					validation.Field(&ec.Capacity,
						validation.Required,
						validation.Min(1),
						validation.Max(MaxEventLogCapacity),
					),
				)
			}),
		),
	)
}

func validatePollConfig(value interface{}) error {
	pc, ok := value.(PollConfig)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a PollConfig")
	}

	err := validation.ValidateStruct(&pc,
		validation.Field(&pc.Endpoint,
			validation.Required,
			validation.By(validateEndpointURL),
		),
		validation.Field(&pc.Interval,
			validation.Required,
			validation.By(validateDuration),
		),
		validation.Field(&pc.Timeout,
			validation.Required,
			validation.By(validateDuration),
		),
	)
	if err != nil {
		return err
	}

	interval, _ := time.ParseDuration(pc.Interval)
	timeout, _ := time.ParseDuration(pc.Timeout)
	if timeout >= interval {
		return validation.NewError("validation_timeout_too_long", "timeout must be shorter than the poll interval")
	}

	return nil
}

func validateHostPort(value interface{}) error {
	addr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return validation.NewError("validation_invalid_hostport", "must be in host:port format")
	}

	if port == "" {
		return validation.NewError("validation_invalid_port", "port cannot be empty")
	}

	if host != "" {
		if err := is.Host.Validate(host); err != nil {
			return validation.NewError("validation_invalid_host", "invalid host")
		}
	}

	return nil
}

func validateDuration(value interface{}) error {
	durationStr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return validation.NewError("validation_invalid_duration", "must be a valid duration (e.g., 2s, 1500ms)")
	}

	if d <= 0 {
		return validation.NewError("validation_non_positive_duration", "must be greater than zero")
	}

	return nil
}

func validateEndpointURL(value interface{}) error {
	endpoint, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	parsedURL, err := url.Parse(endpoint)
	if err != nil {
		return validation.NewError("validation_invalid_url", "must be a valid URL")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return validation.NewError("validation_invalid_scheme", "URL must use http or https scheme")
	}

	if parsedURL.Host == "" {
		return validation.NewError("validation_missing_host", "URL must have a host")
	}

	return nil
}
