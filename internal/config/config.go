// Package config provides functionality for managing configuration options
// for the application using command-line flags, an optional JSON config
// file and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultSessionSecret is used when no secret is configured. It is only fit for development.
const DefaultSessionSecret = "dev-secret"

// Duration is a time.Duration that reads "90m"-style strings from JSON and the environment.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// UnmarshalJSON accepts a duration string or a number of seconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return d.UnmarshalText([]byte(s))
	}
	var secs float64
	if err := json.Unmarshal(data, &secs); err != nil {
		return fmt.Errorf("duration must be a string or seconds: %w", err)
	}
	d.Duration = time.Duration(secs * float64(time.Second))
	return nil
}

// Options holds the configuration values for the application.
type Options struct {
	// Port is the listening port, used when ServerAddress is empty.
	Port string `json:"port" env:"PORT"`
	// ServerAddress is a full ip:port listening address.
	ServerAddress string `json:"server_address" env:"SERVER_ADDRESS"`

	// DatabaseDSN is a SQLite file path or a PostgreSQL connection string.
	DatabaseDSN string `json:"database_dsn" env:"DATABASE_DSN"`

	// SessionSecret signs the session cookie.
	SessionSecret string `json:"session_secret" env:"SESSION_SECRET"`
	// SessionIdleTimeout expires sessions without activity.
	SessionIdleTimeout Duration `json:"session_idle_timeout" env:"SESSION_IDLE_TIMEOUT"`
	// CookieSecure marks the session cookie Secure (HTTPS only).
	CookieSecure bool `json:"cookie_secure" env:"COOKIE_SECURE"`

	// AdminUser and AdminPass are the admin login credentials.
	AdminUser string `json:"admin_user" env:"ADMIN_USER"`
	AdminPass string `json:"admin_pass" env:"ADMIN_PASS"`
	// AdminPassHash is a bcrypt hash that replaces AdminPass when set.
	AdminPassHash string `json:"admin_pass_hash" env:"ADMIN_PASS_HASH"`

	// StaticDir is served at "/" and AdminDir at "/admin/".
	StaticDir string `json:"static_dir" env:"STATIC_DIR"`
	AdminDir  string `json:"admin_dir" env:"ADMIN_DIR"`

	// LogLevel is the zap level name.
	LogLevel string `json:"log_level" env:"LOG_LEVEL"`

	// Config is the path to the Config file.
	Config string `json:"-" env:"CONFIG"`
}

func defaults() *Options {
	return &Options{
		Port:               "3000",
		DatabaseDSN:        "data/app.db",
		SessionSecret:      DefaultSessionSecret,
		SessionIdleTimeout: Duration{2 * time.Hour},
		StaticDir:          "public",
		AdminDir:           "admin",
		LogLevel:           "info",
		Config:             "config.json",
	}
}

// Parse reads configuration from the process arguments and environment.
func Parse() (*Options, error) {
	return Load(os.Args[1:], nil)
}

// Load builds Options from args, then the JSON config file, then environ.
// A nil environ means the process environment.
func Load(args []string, environ map[string]string) (*Options, error) {
	options := defaults()

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&options.ServerAddress, "a", options.ServerAddress, "run on ip:port server")
	fs.StringVar(&options.DatabaseDSN, "d", options.DatabaseDSN, "db address (sqlite path or postgres dsn)")
	fs.StringVar(&options.Config, "config", options.Config, "path to config file")
	fs.StringVar(&options.Config, "c", options.Config, "path to config file (shorthand)")
	fs.StringVar(&options.StaticDir, "static", options.StaticDir, "public static files directory")
	fs.StringVar(&options.AdminDir, "admin-static", options.AdminDir, "admin static files directory")
	fs.StringVar(&options.LogLevel, "log-level", options.LogLevel, "log level")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	configPath := options.Config
	if p, ok := lookup(environ, "CONFIG"); ok && p != "" {
		configPath = p
	}
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if err := env.ParseWithOptions(options, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return options, nil
}

func lookup(environ map[string]string, key string) (string, bool) {
	if environ == nil {
		return os.LookupEnv(key)
	}
	v, ok := environ[key]
	return v, ok
}

// Addr returns the address the HTTP server listens on.
func (o *Options) Addr() string {
	if o.ServerAddress != "" {
		return o.ServerAddress
	}
	if strings.Contains(o.Port, ":") {
		return o.Port
	}
	return ":" + o.Port
}

// Warnings lists configuration that works but should not reach production.
func (o *Options) Warnings() []string {
	var w []string
	if o.SessionSecret == DefaultSessionSecret {
		w = append(w, "SESSION_SECRET is not set; using the development default")
	}
	if o.AdminUser == "" || (o.AdminPass == "" && o.AdminPassHash == "") {
		w = append(w, "admin credentials are not configured; admin login is disabled")
	}
	return w
}
