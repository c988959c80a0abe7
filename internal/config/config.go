package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port          string `yaml:"port" env:"SERVER_PORT"`
		Mode          string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath   string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		MaxUploadMB   int64  `yaml:"max_upload_mb" env:"SERVER_MAX_UPLOAD_MB"`
		ReadTimeout   string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout  string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		ShutdownGrace string `yaml:"shutdown_grace" env:"SERVER_SHUTDOWN_GRACE"`
		// TrustedProxies lists the proxy IPs or CIDRs allowed to set
		// X-Forwarded-For. Empty means the peer address is the client IP.
		TrustedProxies []string `yaml:"trusted_proxies" env:"SERVER_TRUSTED_PROXIES"`
	} `yaml:"server"`

	Database struct {
		URL             string `yaml:"url" env:"DATABASE_URL"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Session struct {
		Secret     string `yaml:"secret" env:"SESSION_SECRET"`
		CookieName string `yaml:"cookie_name" env:"SESSION_COOKIE_NAME"`
		TTL        string `yaml:"ttl" env:"SESSION_TTL"`
		Issuer     string `yaml:"issuer" env:"SESSION_ISSUER"`
		Secure     bool   `yaml:"secure" env:"SESSION_SECURE"`
	} `yaml:"session"`

	Redis struct {
		URL            string `yaml:"url" env:"REDIS_URL"`
		MaxAttempts    int    `yaml:"max_attempts" env:"LOGIN_MAX_ATTEMPTS"`
		AttemptWindow  string `yaml:"attempt_window" env:"LOGIN_ATTEMPT_WINDOW"`
		LockoutPeriod  string `yaml:"lockout_period" env:"LOGIN_LOCKOUT_PERIOD"`
		ConnectTimeout string `yaml:"connect_timeout" env:"REDIS_CONNECT_TIMEOUT"`
	} `yaml:"redis"`

	Jobs struct {
		UploadSweepSchedule string `yaml:"upload_sweep_schedule" env:"JOBS_UPLOAD_SWEEP_SCHEDULE"`
		UploadSweepGrace    string `yaml:"upload_sweep_grace" env:"JOBS_UPLOAD_SWEEP_GRACE"`
	} `yaml:"jobs"`

	Seed struct {
		Demo bool `yaml:"demo" env:"SEED_DEMO"`
	} `yaml:"seed"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables.
// A .env file in the working directory, if present, is loaded into the
// process environment first so it can feed the env overrides.
func LoadConfig(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "static/uploads"
	config.Server.MaxUploadMB = 16
	config.Server.ReadTimeout = "15s"
	config.Server.WriteTimeout = "30s"
	config.Server.ShutdownGrace = "10s"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "learnhub"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.Session.CookieName = "learnhub_session"
	config.Session.TTL = "168h"
	config.Session.Issuer = "learnhub"

	config.Redis.MaxAttempts = 5
	config.Redis.AttemptWindow = "15m"
	config.Redis.LockoutPeriod = "15m"
	config.Redis.ConnectTimeout = "3s"

	config.Jobs.UploadSweepSchedule = "@every 6h"
	config.Jobs.UploadSweepGrace = "24h"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.URL == "" && config.Database.Host == "" {
		return fmt.Errorf("database url or host is required")
	}

	if config.Session.Secret == "" {
		return fmt.Errorf("session secret is required")
	}

	if config.Server.StoragePath == "" {
		return fmt.Errorf("storage path is required")
	}

	if config.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("max upload size must be positive")
	}

	if config.Redis.MaxAttempts <= 0 {
		return fmt.Errorf("login max attempts must be positive")
	}

	durations := map[string]string{
		"session ttl":            config.Session.TTL,
		"database conn lifetime": config.Database.ConnMaxLifetime,
		"server read timeout":    config.Server.ReadTimeout,
		"server write timeout":   config.Server.WriteTimeout,
		"server shutdown grace":  config.Server.ShutdownGrace,
		"login attempt window":   config.Redis.AttemptWindow,
		"login lockout period":   config.Redis.LockoutPeriod,
		"redis connect timeout":  config.Redis.ConnectTimeout,
		"upload sweep grace":     config.Jobs.UploadSweepGrace,
	}
	for name, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}

	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}

// MaxUploadBytes returns the multipart size limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return c.Server.MaxUploadMB << 20
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
