package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Service ServiceConfig
	HTTP    HTTPConfig
	Logger  LoggerConfig
	Gemini  GeminiConfig
}

type ServiceConfig struct {
	Name    string
	Version string
}

type HTTPConfig struct {
	Host string
	Port int
}

type LoggerConfig struct {
	Level string
}

type GeminiConfig struct {
	Model     string
	APIKey    string
	BaseURL   string
	UseVertex bool
	Project   string
	Location  string
	// Timeout bounds a single generation. Zero leaves the call unbounded.
	Timeout time.Duration
}

// Addr is the listen address for the HTTP server.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load resolves configuration from config.yaml (./config or .), the
// environment and, when flags is non-nil, the --host and --port flags.
// The environment is expected to already contain anything from .env.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	if flags != nil {
		for key, name := range map[string]string{"http.host": "host", "http.port": "port"} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	cfg.Service.Name = v.GetString("service.name")
	cfg.Service.Version = v.GetString("service.version")
	cfg.HTTP.Host = v.GetString("http.host")
	cfg.HTTP.Port = v.GetInt("http.port")
	cfg.Logger.Level = v.GetString("logger.level")

	cfg.Gemini.Model = v.GetString("gemini.model")
	cfg.Gemini.APIKey = v.GetString("gemini.api_key")
	cfg.Gemini.BaseURL = v.GetString("gemini.base_url")
	cfg.Gemini.UseVertex = v.GetBool("gemini.use_vertex")
	cfg.Gemini.Project = v.GetString("gemini.project")
	cfg.Gemini.Location = v.GetString("gemini.location")
	cfg.Gemini.Timeout = v.GetDuration("gemini.timeout")

	return cfg, nil
}

// Validate reports configuration that would keep the service from starting.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.HTTP.Port)
	}
	if c.Gemini.Model == "" {
		return errors.New("GEMINI_MODEL must not be empty")
	}
	if c.Gemini.Timeout < 0 {
		return fmt.Errorf("GENERATE_TIMEOUT must not be negative, got %s", c.Gemini.Timeout)
	}
	// A bare number such as "30" is read as nanoseconds.
	if c.Gemini.Timeout > 0 && c.Gemini.Timeout < time.Millisecond {
		return fmt.Errorf("GENERATE_TIMEOUT %s is too short, give it a unit such as 30s", c.Gemini.Timeout)
	}
	if c.Gemini.UseVertex {
		if c.Gemini.Project == "" || c.Gemini.Location == "" {
			return errors.New("GOOGLE_CLOUD_PROJECT and GOOGLE_CLOUD_LOCATION are required with GOOGLE_GENAI_USE_VERTEXAI")
		}
		return nil
	}
	if c.Gemini.APIKey == "" {
		return errors.New("GEMINI_API_KEY (or GOOGLE_API_KEY) is required")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.name", "AI Service")
	v.SetDefault("service.version", "1.0.0")
	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8000)
	v.SetDefault("logger.level", "info")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.timeout", "0s")
}

// bindEnv maps keys onto the variable names used by the Google SDKs and the
// deployment environment, which don't follow the dotted key layout.
func bindEnv(v *viper.Viper) error {
	bindings := [][]string{
		{"service.name", "SERVICE_NAME"},
		{"service.version", "SERVICE_VERSION"},
		{"http.host", "HOST"},
		{"http.port", "PORT"},
		{"logger.level", "LOG_LEVEL"},
		{"gemini.model", "GEMINI_MODEL"},
		{"gemini.api_key", "GEMINI_API_KEY", "GOOGLE_API_KEY"},
		{"gemini.base_url", "GEMINI_BASE_URL"},
		{"gemini.use_vertex", "GOOGLE_GENAI_USE_VERTEXAI"},
		{"gemini.project", "GOOGLE_CLOUD_PROJECT"},
		{"gemini.location", "GOOGLE_CLOUD_LOCATION"},
		{"gemini.timeout", "GENERATE_TIMEOUT"},
	}
	for _, b := range bindings {
		if err := v.BindEnv(b...); err != nil {
			return fmt.Errorf("bind env %s: %w", b[0], err)
		}
	}
	return nil
}
