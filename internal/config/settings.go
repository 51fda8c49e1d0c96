package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. PAYCALC_SERVER_ADDR
const EnvPrefix = "PAYCALC"

// Settings are the application-level options shared by the CLI and server
type Settings struct {
	LogLevel       string         `mapstructure:"log_level"`
	LogFormat      string         `mapstructure:"log_format"`
	RegulatoryPath string         `mapstructure:"regulatory_path"`
	DefaultSystem  string         `mapstructure:"default_system"`
	Output         string         `mapstructure:"output"`
	Server         ServerSettings `mapstructure:"server"`
}

// ServerSettings configures the HTTP endpoint
type ServerSettings struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("regulatory_path", "")
	v.SetDefault("default_system", "")
	v.SetDefault("output", "console")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
}

// LoadSettings reads .env (when present), then the optional settings file,
// then PAYCALC_* environment variables. Later sources win.
func LoadSettings(configFile string) (*Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate rejects settings the CLI and server cannot run with
func (s *Settings) Validate() error {
	var errs ValidationErrors

	switch strings.ToLower(s.LogLevel) {
	case "trace", "debug", "info", "warn", "error", "disabled":
	default:
		errs.add("log_level", "unknown level %q", s.LogLevel)
	}
	switch s.LogFormat {
	case "console", "json":
	default:
		errs.add("log_format", "must be console or json, got %q", s.LogFormat)
	}
	if s.Server.Addr == "" {
		errs.add("server.addr", "cannot be empty")
	}
	if s.Server.ShutdownTimeout < 0 {
		errs.add("server.shutdown_timeout", "cannot be negative")
	}
	return errs.Err()
}
