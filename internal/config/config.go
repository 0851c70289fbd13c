package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of both services. Each service only reads the sections it needs.
type Config struct {
	Addr       string   `yaml:"addr"`
	GinMode    string   `yaml:"gin_mode"`
	GinLogging bool     `yaml:"gin_logging"`
	LogLevel   string   `yaml:"log_level"`
	Database   Database `yaml:"database"`
	Customer   Customer `yaml:"customer"`
	AuditUser  string   `yaml:"audit_user"`
}

// Database describes the connection of the customer service to its table.
type Database struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	// DSN overrides all other connection settings when set.
	DSN string `yaml:"dsn"`
}

// Customer tells the dashboard where the customer service lives.
type Customer struct {
	AppURI  string        `yaml:"app_uri"`
	Timeout time.Duration `yaml:"timeout"`
}

// Default ports of the two services. The dashboard's default customer service URI points at the
// customer service's default port.
const (
	CustomerAddr  = ":8080"
	DashboardAddr = ":8081"
)

// Option changes a default before the file and the environment are applied.
type Option func(*Config)

// WithAddr replaces the default listen address.
func WithAddr(addr string) Option {
	return func(cfg *Config) {
		cfg.Addr = addr
	}
}

// Load builds the configuration from defaults, the YAML file at path (if it exists), a .env file
// in the working directory (if it exists) and finally the environment.
func Load(path string, opts ...Option) (*Config, error) {
	cfg := &Config{
		Addr:       CustomerAddr,
		GinMode:    "release",
		GinLogging: true,
		LogLevel:   "info",
		AuditUser:  "customer-service",
		Database: Database{
			Driver: "mysql",
			Host:   "localhost:3306",
			Name:   "test",
		},
		Customer: Customer{
			AppURI: "http://localhost:8080/api/customer",
		},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if path != "" {
		if f, err := os.Open(path); err == nil {
			defer f.Close()
			if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	// Variables already present in the environment win over the .env file.
	_ = godotenv.Load()

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Addr = ":" + v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		cfg.GinMode = v
	}
	if v := os.Getenv("GIN_LOGGING"); v != "" {
		cfg.GinLogging = !strings.EqualFold(v, "off")
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("AUDIT_USER"); v != "" {
		cfg.AuditUser = v
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DBHOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DBUSER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DBPWD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DBNAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("CUSTOMER_APP_URI"); v != "" {
		cfg.Customer.AppURI = v
	}
	if v := os.Getenv("CUSTOMER_APP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid CUSTOMER_APP_TIMEOUT %q: %w", v, err)
		}
		cfg.Customer.Timeout = d
	}
	return nil
}

// DataSourceName returns the connection string for the configured driver.
func (d Database) DataSourceName() string {
	if d.DSN != "" {
		return d.DSN
	}
	switch d.Driver {
	case "postgres":
		return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", d.User, d.Password, d.Host, d.Name)
	case "sqlite3":
		return d.Name
	default:
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", d.User, d.Password, d.Host, d.Name)
	}
}
