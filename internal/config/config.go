// Package config provides Viper-based configuration management for propctl
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/propuestas-project/propctl/internal/validate"
)

// EnvPrefix prefixes every environment override, e.g. PROPCTL_LOGGING_LEVEL
const EnvPrefix = "PROPCTL"

// Config represents the complete propctl configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Session SessionConfig `mapstructure:"session"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`

	// Source is the config file that was read, empty when none was found
	Source string `mapstructure:"-" json:"-"`
}

// APIConfig contains backend connection settings
type APIConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	// Timeout of zero means no client-side timeout
	Timeout   time.Duration `mapstructure:"timeout" validate:"gte=0"`
	RateLimit float64       `mapstructure:"rate_limit" validate:"gte=0"`
	Burst     int           `mapstructure:"burst" validate:"gte=0"`
	UserAgent string        `mapstructure:"user_agent"`
}

// SessionConfig says where the session is persisted
type SessionConfig struct {
	File string `mapstructure:"file" validate:"required"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Colors bool `mapstructure:"colors"`
}

// Load reads configuration from the .env file, the config file and
// environment variables, in increasing order of precedence. An empty envFile
// means ".env" in the working directory; a missing env file is not an error.
func Load(cfgFile, envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		// Search paths for .propctl.yaml
		v.SetConfigName(".propctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/propctl")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("api.base_url", EnvPrefix+"_API_URL", EnvPrefix+"_API_BASE_URL"); err != nil {
		return nil, fmt.Errorf("binding env: %w", err)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Source = v.ConfigFileUsed()
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	cfg.Session.File = expandHome(cfg.Session.File)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing is configured
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "http://localhost:8000/api",
			UserAgent: "propctl",
		},
		Session: SessionConfig{File: defaultSessionFile()},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Output:  OutputConfig{Colors: true},
	}
}

// setDefaults configures default values
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", time.Duration(0))
	v.SetDefault("api.rate_limit", 0.0)
	v.SetDefault("api.burst", 1)
	v.SetDefault("api.user_agent", d.API.UserAgent)

	v.SetDefault("session.file", d.Session.File)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)

	v.SetDefault("output.colors", d.Output.Colors)
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".propctl-session.json"
	}
	return filepath.Join(home, ".config", "propctl", "session.json")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
