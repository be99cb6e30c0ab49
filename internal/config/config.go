// Package config manages environment variables.
//
// It reads variables from the `.env` file and the process environment,
// loads them into structured Go types (struct), and validates that
// required values are present so they can be reused across the
// application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide defaults for every optional setting.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Two env layers are loaded into one koanf instance, later layers win:

	1. Plain variables used by existing deployments of the service:
	   OFFICIAL_EMAIL, GEMINI_API_KEY, PORT
	2. Prefixed variables: BFHL_<section>.<key>
	   e.g. BFHL_SERVER.PORT -> server.port -> Config.Server.Port

	Keys are lowercased with the prefix removed. Underscores are kept, so
	BFHL_PRIMARY.OFFICIAL_EMAIL maps to primary.official_email.
*/

const envPrefix = "BFHL_"

// plainEnvKeys maps unprefixed variables onto koanf keys.
var plainEnvKeys = map[string]string{
	"OFFICIAL_EMAIL": "primary.official_email",
	"GEMINI_API_KEY": "gemini.api_key",
	"PORT":           "server.port",
	"APP_ENV":        "primary.env",
}

const (
	DefaultPort            = "3000"
	DefaultGeminiEndpoint  = "https://generativelanguage.googleapis.com/v1beta/models/gemini-pro:generateContent"
	DefaultGeminiTimeout   = 5 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultRateLimit       = 20
	DefaultBodyLimit       = "1M"
)

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from and the
// `validate:"..."` tags are enforced by go-playground/validator.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Gemini        GeminiConfig         `koanf:"gemini"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment and
// the identity reported in every successful response.
type Primary struct {
	Env           string `koanf:"env" validate:"required"`
	OfficialEmail string `koanf:"official_email" validate:"required,email"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required,numeric"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"gte=0"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"gte=0"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"gte=0"`
	ShutdownTimeout    int      `koanf:"shutdown_timeout" validate:"gte=0"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// RateLimit is the number of requests per second allowed per client IP.
	// Zero disables rate limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"gte=0"`

	// BodyLimit caps request bodies, in Echo's size notation (e.g. "1M").
	BodyLimit string `koanf:"body_limit"`
}

// GeminiConfig configures the outbound text-generation client.
//
// APIKey may be empty: calls then fail upstream and the AI operation
// answers with its fallback value.
type GeminiConfig struct {
	APIKey   string        `koanf:"api_key"`
	Endpoint string        `koanf:"endpoint" validate:"omitempty,url"`
	Timeout  time.Duration `koanf:"timeout" validate:"gte=0"`
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, applies defaults, validates it and returns the result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: plain names. Returning "" from the callback skips a variable.
	err := k.Load(env.Provider("", ".", func(s string) string {
		return plainEnvKeys[s]
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load plain env variables: %w", err)
	}

	// Layer 2: BFHL_ prefixed names.
	err = k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load prefixed env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	mainConfig.applyDefaults()

	// An explicit zero turns rate limiting off, so only an absent key
	// gets the default.
	if !k.Exists("server.rate_limit") {
		mainConfig.Server.RateLimit = DefaultRateLimit
	}

	if err := mainConfig.Validate(); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// applyDefaults fills every optional setting left empty by the environment.
func (c *Config) applyDefaults() {
	if c.Primary.Env == "" {
		c.Primary.Env = "development"
	}

	if c.Server.Port == "" {
		c.Server.Port = DefaultPort
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = int(DefaultShutdownTimeout / time.Second)
	}
	if len(c.Server.CORSAllowedOrigins) == 0 {
		c.Server.CORSAllowedOrigins = []string{"*"}
	}
	if c.Server.BodyLimit == "" {
		c.Server.BodyLimit = DefaultBodyLimit
	}

	if c.Gemini.Endpoint == "" {
		c.Gemini.Endpoint = DefaultGeminiEndpoint
	}
	if c.Gemini.Timeout == 0 {
		c.Gemini.Timeout = DefaultGeminiTimeout
	}

	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}
	c.Observability.applyDefaults()

	// Service name and environment always follow the primary config so
	// logs and traces see consistent naming.
	c.Observability.ServiceName = "bfhl"
	c.Observability.Environment = c.Primary.Env
}

// Validate checks struct tags and the observability block.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if c.Observability != nil {
		if err := c.Observability.Validate(); err != nil {
			return fmt.Errorf("invalid observability config: %w", err)
		}
	}

	return nil
}
