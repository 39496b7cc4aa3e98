// Package config resolves mdlist settings from defaults, an optional config
// file and MDLIST_* environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Render RenderConfig
	Server ServerConfig
	Log    LogConfig
}

type RenderConfig struct {
	IndentUnit int
	KeyAttr    string
	RoleAttr   string
}

type ServerConfig struct {
	Addr         string
	Token        string
	MaxBodyBytes int64
}

type LogConfig struct {
	Level  string
	Format string
}

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
// A missing config file is not an error; a malformed one is.
func Load(ctx context.Context, v *viper.Viper) error {
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "mdlist"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "mdlist"))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	// MDLIST_SERVER_ADDR and friends
	v.SetEnvPrefix("mdlist")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.Set("log.level", strings.ToLower(strings.TrimSpace(v.GetString("log.level"))))
	v.Set("log.format", strings.ToLower(strings.TrimSpace(v.GetString("log.format"))))
	return nil
}

// FromViper copies resolved settings into a Config.
func FromViper(v *viper.Viper) Config {
	return Config{
		Render: RenderConfig{
			IndentUnit: v.GetInt("render.indent_unit"),
			KeyAttr:    v.GetString("render.key_attr"),
			RoleAttr:   v.GetString("render.role_attr"),
		},
		Server: ServerConfig{
			Addr:         v.GetString("server.addr"),
			Token:        v.GetString("server.token"),
			MaxBodyBytes: v.GetInt64("server.max_body_bytes"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
		},
	}
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// CheckConfigValidity reports every invalid setting at once.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error
	if v.GetInt("render.indent_unit") <= 0 {
		errs = append(errs, errors.New("render.indent_unit must be greater than 0"))
	}
	if strings.TrimSpace(v.GetString("server.addr")) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if v.GetInt64("server.max_body_bytes") <= 0 {
		errs = append(errs, errors.New("server.max_body_bytes must be greater than 0"))
	}
	level := strings.ToLower(v.GetString("log.level"))
	if _, ok := logLevels[level]; !ok {
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", level))
	}
	switch format := strings.ToLower(v.GetString("log.format")); format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not one of text, json", format))
	}
	return errors.Join(errs...)
}

// NewLogger builds the process logger. Unknown levels fall back to info.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, ok := logLevels[c.Level]
	if !ok {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "mdlist", "config.toml")
}
