// Package config manages the service configuration.
//
// It layers configuration sources (built-in defaults, an optional
// `appsettings.json` file, `CONTACTS_` environment variables and command
// line flags), loads them into structured Go types and validates that
// required values are present so the app fails fast on bad config.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file (if present) into the process
	// environment before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

/*
	Keys are dot separated and map onto the `koanf:"..."` tags below:

	- appsettings.json:  {"server": {"port": "8080"}}
	- environment:       CONTACTS_SERVER__PORT=8080  (a double underscore nests)
	- flags:             --port 8080

	all resolve to `server.port` -> Config.Server.Port.
*/

const (
	// EnvPrefix is the prefix every environment variable must carry to be read.
	EnvPrefix = "CONTACTS_"

	// DefaultFile is the settings file looked up when none is given.
	DefaultFile = "appsettings.json"

	// ServiceName identifies the service in logs and APM when not configured.
	ServiceName = "contacts-service"
)

// Config is the root configuration object for the application.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=local development staging production test"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Host               string          `koanf:"host"`
	Port               string          `koanf:"port" validate:"required"`
	ReadTimeout        int             `koanf:"read_timeout" validate:"required,gt=0"`
	WriteTimeout       int             `koanf:"write_timeout" validate:"required,gt=0"`
	IdleTimeout        int             `koanf:"idle_timeout" validate:"required,gt=0"`
	ShutdownTimeout    int             `koanf:"shutdown_timeout" validate:"required,gt=0"`
	CORSAllowedOrigins []string        `koanf:"cors_allowed_origins" validate:"required,min=1"`
	RateLimit          RateLimitConfig `koanf:"rate_limit"`
}

// Address is the host:port pair the HTTP server binds to.
func (s ServerConfig) Address() string {
	return s.Host + ":" + s.Port
}

// RateLimitConfig controls the optional per-client request limiter.
type RateLimitConfig struct {
	Enabled           bool    `koanf:"enabled"`
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"gte=0"`
	Burst             int     `koanf:"burst" validate:"gte=0"`
}

// Options tells LoadConfig where to look besides the environment.
type Options struct {
	// File is the path of the settings file. Empty means DefaultFile.
	// A missing file is not an error.
	File string

	// Flags are command line flags layered on top of every other source.
	// Only flags the user actually changed take effect.
	Flags *pflag.FlagSet
}

// flagKeys maps command line flag names onto configuration keys.
var flagKeys = map[string]string{
	"host":       "server.host",
	"port":       "server.port",
	"env":        "primary.env",
	"log-level":  "observability.logging.level",
	"log-format": "observability.logging.format",
}

// defaults are loaded first so every other source only overrides.
func defaults() map[string]interface{} {
	obs := DefaultObservabilityConfig()

	return map[string]interface{}{
		"primary.env":                                         "development",
		"server.host":                                         "",
		"server.port":                                         "8080",
		"server.read_timeout":                                 15,
		"server.write_timeout":                                15,
		"server.idle_timeout":                                 60,
		"server.shutdown_timeout":                             30,
		"server.cors_allowed_origins":                         []string{"*"},
		"server.rate_limit.enabled":                           false,
		"server.rate_limit.requests_per_second":               20.0,
		"server.rate_limit.burst":                             40,
		"observability.service_name":                          obs.ServiceName,
		"observability.logging.level":                         obs.Logging.Level,
		"observability.logging.format":                        obs.Logging.Format,
		"observability.logging.slow_request_threshold":        obs.Logging.SlowRequestThreshold.String(),
		"observability.new_relic.license_key":                 obs.NewRelic.LicenseKey,
		"observability.new_relic.app_log_forwarding_enabled":  obs.NewRelic.AppLogForwardingEnabled,
		"observability.new_relic.distributed_tracing_enabled": obs.NewRelic.DistributedTracingEnabled,
		"observability.new_relic.debug_logging":               obs.NewRelic.DebugLogging,
	}
}

// envKey turns CONTACTS_SERVER__READ_TIMEOUT into server.read_timeout.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// LoadConfig loads configuration from every source, unmarshals it into
// Config, validates it and returns the result.
func LoadConfig(opts Options) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("could not load defaults: %w", err)
	}

	path := opts.File
	if path == "" {
		path = DefaultFile
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), kjson.Parser()); err != nil {
			return nil, fmt.Errorf("could not load %s: %w", path, err)
		}
	} else if opts.File != "" {
		// An explicitly requested file must exist.
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = envKey(key)
		if key == "server.cors_allowed_origins" {
			return key, strings.Split(value, ",")
		}
		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	if opts.Flags != nil {
		err := k.Load(posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(opts.Flags, f)
		}), nil)
		if err != nil {
			return nil, fmt.Errorf("could not load flags: %w", err)
		}
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}
	if mainConfig.Observability.ServiceName == "" {
		mainConfig.Observability.ServiceName = ServiceName
	}
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// Redacted returns a copy of the config that is safe to print.
func (c *Config) Redacted() *Config {
	out := *c
	if c.Observability != nil {
		obs := *c.Observability
		if obs.NewRelic.LicenseKey != "" {
			obs.NewRelic.LicenseKey = "********"
		}
		out.Observability = &obs
	}
	return &out
}
