// Package config manages the service configuration.
//
// Values are layered, lowest precedence first:
//   - built-in defaults (Default)
//   - an optional YAML file named by ITEMS_CONFIG
//   - environment variables prefixed with ITEMS_ (a `.env` file is loaded
//     into the process environment first, if present)
//
// The merged result is validated before it is handed to the rest of the app.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Loads `.env` into the process environment before any env var is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is the prefix every configuration env var carries.
	EnvPrefix = "ITEMS_"

	// ConfigFileEnv names the env var holding an optional YAML config path.
	ConfigFileEnv = "ITEMS_CONFIG"

	// envNestingSeparator splits env var names into nested keys:
	// ITEMS_SERVER__READ_TIMEOUT -> server.read_timeout
	envNestingSeparator = "__"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are whole seconds.
type ServerConfig struct {
	Host            string `koanf:"host"`
	Port            string `koanf:"port" validate:"required"`
	ReadTimeout     int    `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout    int    `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout     int    `koanf:"idle_timeout" validate:"required,min=1"`
	ShutdownTimeout int    `koanf:"shutdown_timeout" validate:"required,min=1"`

	CORSAllowedOrigins   []string `koanf:"cors_allowed_origins" validate:"required,min=1"`
	CORSAllowCredentials bool     `koanf:"cors_allow_credentials"`

	// StrictNotFound makes item lookups that miss answer 404 instead of 200.
	// The body is {"error": "Item not found"} either way.
	StrictNotFound bool `koanf:"strict_not_found"`
}

// Address returns the host:port the HTTP server listens on.
func (s ServerConfig) Address() string {
	return s.Host + ":" + s.Port
}

// Default returns the configuration used when nothing overrides it:
// listen on every interface, port 8000, permissive CORS.
func Default() *Config {
	return &Config{
		Primary: Primary{
			Env: "development",
		},
		Server: ServerConfig{
			Host:                 "0.0.0.0",
			Port:                 "8000",
			ReadTimeout:          30,
			WriteTimeout:         30,
			IdleTimeout:          60,
			ShutdownTimeout:      10,
			CORSAllowedOrigins:   []string{"*"},
			CORSAllowCredentials: true,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig builds the configuration from defaults, the optional YAML file
// and ITEMS_ env vars, then validates it.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("could not load config file %s: %w", path, err)
		}
	}

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKeyValue), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	// Unmarshal over the defaults so only provided keys replace them.
	mainConfig := Default()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	if err := finalize(mainConfig); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// envKeyValue maps an env var to a koanf key path and value.
//
//	ITEMS_PRIMARY__ENV                  -> primary.env
//	ITEMS_OBSERVABILITY__LOGGING__LEVEL -> observability.logging.level
//
// List values are comma separated. ITEMS_CONFIG only names the config file
// and is never a key.
func envKeyValue(name, value string) (string, interface{}) {
	if name == ConfigFileEnv {
		return "", nil
	}

	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	key = strings.ReplaceAll(key, envNestingSeparator, ".")

	if listKeys[key] {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return key, parts
	}

	return key, value
}

// listKeys are the keys whose env values are split on commas.
var listKeys = map[string]bool{
	"server.cors_allowed_origins": true,
}

// finalize validates cfg and fills in the observability block.
func finalize(cfg *Config) error {
	validate := validator.New()

	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Observability == nil {
		cfg.Observability = DefaultObservabilityConfig()
	}

	// Service name is fixed; environment always follows primary.env.
	cfg.Observability.ServiceName = ServiceName
	cfg.Observability.Environment = cfg.Primary.Env

	if err := cfg.Observability.Validate(); err != nil {
		return fmt.Errorf("invalid observability config: %w", err)
	}

	return nil
}
