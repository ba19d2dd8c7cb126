package appconfig

import (
	"os"
	"path/filepath"

	"pkt.systems/codetribe/schema"
)

// Config is the top-level application configuration.
type Config struct {
	ConfigVersion int             `mapstructure:"config_version" yaml:"config_version"`
	Session       SessionConfig   `mapstructure:"session" yaml:"session"`
	Execution     ExecutionConfig `mapstructure:"execution" yaml:"execution"`
	HTTP          HTTPConfig      `mapstructure:"http" yaml:"http"`
	Logging       LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// SessionConfig controls core session behavior.
type SessionConfig struct {
	DefaultLanguage string   `mapstructure:"default_language" yaml:"default_language"`
	ConsoleMaxLines int      `mapstructure:"console_max_lines" yaml:"console_max_lines"`
	HistoryMax      int      `mapstructure:"history_max" yaml:"history_max"`
	MaxCodeBytes    int      `mapstructure:"max_code_bytes" yaml:"max_code_bytes"`
	UserColors      []string `mapstructure:"user_colors" yaml:"user_colors"`
}

// ExecutionConfig controls the simulated execution dispatcher.
type ExecutionConfig struct {
	FaultRate    float64 `mapstructure:"fault_rate" yaml:"fault_rate"`
	LatencyMinMS int     `mapstructure:"latency_min_ms" yaml:"latency_min_ms"`
	LatencyMaxMS int     `mapstructure:"latency_max_ms" yaml:"latency_max_ms"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr                string `mapstructure:"addr" yaml:"addr"`
	SessionCookie       string `mapstructure:"session_cookie" yaml:"session_cookie"`
	SessionTTLHours     int    `mapstructure:"session_ttl_hours" yaml:"session_ttl_hours"`
	BaseURL             string `mapstructure:"base_url" yaml:"base_url"`
	BasePath            string `mapstructure:"base_path" yaml:"base_path"`
	InitialConsoleLines int    `mapstructure:"initial_console_lines" yaml:"initial_console_lines"`
}

// LoggingConfig controls audit logging behavior.
type LoggingConfig struct {
	DisableAuditTrails bool `mapstructure:"disable_audit_trails" yaml:"disable_audit_trails"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() (Config, error) {
	return Config{
		ConfigVersion: CurrentConfigVersion,
		Session: SessionConfig{
			DefaultLanguage: string(schema.DefaultLanguage),
			ConsoleMaxLines: schema.DefaultConsoleMaxLines,
			HistoryMax:      schema.DefaultHistoryMax,
			MaxCodeBytes:    schema.DefaultMaxCodeBytes,
			UserColors:      append([]string(nil), schema.DefaultUserColors...),
		},
		Execution: ExecutionConfig{
			FaultRate:    0.1,
			LatencyMinMS: 500,
			LatencyMaxMS: 1500,
		},
		HTTP: HTTPConfig{
			Addr:                ":27490",
			SessionCookie:       "codetribe_session",
			SessionTTLHours:     720,
			BaseURL:             "",
			BasePath:            "",
			InitialConsoleLines: 200,
		},
		Logging: LoggingConfig{
			DisableAuditTrails: false,
		},
	}, nil
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".codetribe", "config.yaml"), nil
}
