package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
		// Host is the bind address; the desktop shell talks to the core over loopback.
		Host string `yaml:"host" env:"SERVER_HOST"`
	} `yaml:"server"`

	Database struct {
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

	JWT struct {
		Secret          string `yaml:"secret" env:"JWT_SECRET"`
		TokenExpiration string `yaml:"token_expiration" env:"JWT_TOKEN_EXPIRATION"`
		Issuer          string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Reports struct {
		ExportDir       string `yaml:"export_dir" env:"REPORTS_EXPORT_DIR"`
		SnapshotEnabled bool   `yaml:"snapshot_enabled" env:"REPORTS_SNAPSHOT_ENABLED"`
		SnapshotCron    string `yaml:"snapshot_cron" env:"REPORTS_SNAPSHOT_CRON"`
	} `yaml:"reports"`

	// Admin is the account seeded on first start when no admin exists.
	Admin struct {
		Username string `yaml:"username" env:"ADMIN_USERNAME"`
		Email    string `yaml:"email" env:"ADMIN_EMAIL"`
		Password string `yaml:"password" env:"ADMIN_PASSWORD"`
	} `yaml:"admin"`
}

// LoadConfig loads configuration from a file and environment variables.
// Precedence: defaults < YAML file < .env file < process environment.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Try to read config file if it exists
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadDotEnv(".env"); err != nil {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
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
	config.Server.Host = "127.0.0.1"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "hostel_v2"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 1
	config.Database.MaxOpenConns = 4
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.TokenExpiration = "12h"
	config.JWT.Issuer = "hostel.desk"

	config.Logging.Level = "info"
	config.Logging.Format = "text"

	config.Reports.ExportDir = "exports"
	config.Reports.SnapshotEnabled = false
	config.Reports.SnapshotCron = "0 23 * * *"

	config.Admin.Username = "admin"
	config.Admin.Email = "admin@hostel.local"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.TokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT token expiration format: %w", err)
	}

	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid connection max lifetime: %w", err)
	}

	if config.Database.MaxOpenConns < 1 {
		return fmt.Errorf("max_open_conns must be at least 1")
	}

	if config.Reports.SnapshotEnabled && strings.TrimSpace(config.Reports.SnapshotCron) == "" {
		return fmt.Errorf("snapshot_cron is required when snapshots are enabled")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
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

// ListenAddr returns the host:port the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as an integer or returns a default value
func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
