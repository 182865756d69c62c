package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jaekwang-park/todolist/internal/logging"
)

var validEnvs = map[string]bool{
	"local": true,
	"alpha": true,
	"beta":  true,
	"prod":  true,
}

var validDrivers = map[string]bool{
	"postgres": true,
	"sqlite3":  true,
	"memory":   true,
}

var validLogFormats = map[string]bool{
	logging.FormatJSON:    true,
	logging.FormatText:    true,
	logging.FormatConsole: true,
}

type Config struct {
	ServerPort string   `toml:"server_port"`
	AppEnv     string   `toml:"app_env"`
	LogLevel   string   `toml:"log_level"`
	LogFormat  string   `toml:"log_format"`
	StaticDir  string   `toml:"static_dir"`
	DB         DBConfig `toml:"db"`
}

func (c Config) ParseLogLevel() slog.Level {
	return logging.ParseLevel(c.LogLevel)
}

func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("invalid SERVER_PORT %q: %w", c.ServerPort, err)
	}
	if !validEnvs[c.AppEnv] {
		return fmt.Errorf("invalid APP_ENV %q: must be one of local, alpha, beta, prod", c.AppEnv)
	}
	if !validLogFormats[strings.ToLower(c.LogFormat)] {
		return fmt.Errorf("invalid LOG_FORMAT %q: must be one of json, text, console", c.LogFormat)
	}
	if !validDrivers[c.DB.Driver] {
		return fmt.Errorf("invalid DB_DRIVER %q: must be one of postgres, sqlite3, memory", c.DB.Driver)
	}
	if c.DB.Driver == "memory" && c.AppEnv == "prod" {
		return fmt.Errorf("DB_DRIVER=memory must not be used in prod environment")
	}
	if c.DB.Driver == "sqlite3" && c.DB.Path == "" {
		return fmt.Errorf("DB_PATH is required when DB_DRIVER is sqlite3")
	}
	return nil
}

type DBConfig struct {
	Driver      string `toml:"driver"`
	Host        string `toml:"host"`
	Port        string `toml:"port"`
	User        string `toml:"user"`
	Password    string `toml:"password"`
	Name        string `toml:"name"`
	SSLMode     string `toml:"sslmode"`
	Path        string `toml:"path"`
	AutoMigrate bool   `toml:"auto_migrate"`
}

// DSN returns the data source name for the configured driver: a postgres URL,
// the sqlite file path, or "" for the in-memory store.
func (d DBConfig) DSN() string {
	switch d.Driver {
	case "sqlite3":
		return d.Path
	case "memory":
		return ""
	}

	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     d.Name,
		RawQuery: fmt.Sprintf("sslmode=%s", url.QueryEscape(d.SSLMode)),
	}
	return u.String()
}

func defaults() Config {
	return Config{
		ServerPort: "8080",
		AppEnv:     "local",
		LogLevel:   "info",
		LogFormat:  logging.FormatJSON,
		DB: DBConfig{
			Driver:      "postgres",
			Host:        "localhost",
			Port:        "5432",
			User:        "todo",
			Password:    "todo",
			Name:        "todo",
			SSLMode:     "disable",
			Path:        "todo.db",
			AutoMigrate: true,
		},
	}
}

// Load builds the configuration from defaults, then the TOML file named by
// CONFIG_FILE (if set), then environment variables.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg.ServerPort = envOrDefault("SERVER_PORT", cfg.ServerPort)
	cfg.AppEnv = envOrDefault("APP_ENV", cfg.AppEnv)
	cfg.LogLevel = envOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envOrDefault("LOG_FORMAT", cfg.LogFormat)
	cfg.StaticDir = envOrDefault("STATIC_DIR", cfg.StaticDir)
	cfg.DB.Driver = envOrDefault("DB_DRIVER", cfg.DB.Driver)
	cfg.DB.Host = envOrDefault("DB_HOST", cfg.DB.Host)
	cfg.DB.Port = envOrDefault("DB_PORT", cfg.DB.Port)
	cfg.DB.User = envOrDefault("DB_USER", cfg.DB.User)
	cfg.DB.Password = envOrDefault("DB_PASSWORD", cfg.DB.Password)
	cfg.DB.Name = envOrDefault("DB_NAME", cfg.DB.Name)
	cfg.DB.SSLMode = envOrDefault("DB_SSLMODE", cfg.DB.SSLMode)
	cfg.DB.Path = envOrDefault("DB_PATH", cfg.DB.Path)
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		cfg.DB.AutoMigrate = strings.EqualFold(v, "true")
	}

	return cfg, nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
