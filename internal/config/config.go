// Package config loads runtime settings from flags, the environment and an
// optional .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds every setting the service reads at startup.
type Config struct {
	AppPort     string
	Store       StoreConfig
	ImagesDir   string
	RabbitMQURL string
	LogLevel    string
	LogFormat   string
	Seed        SeedConfig
}

// StoreConfig holds the document store connection parameters.
type StoreConfig struct {
	Driver     string
	DSN        string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	SQLitePath string
	Timeout    time.Duration
}

// SeedConfig controls the optional seed run at startup.
type SeedConfig struct {
	File string
	Drop bool
	Only bool
}

// PostgresDSN returns the explicit DSN or builds one from the parts.
func (s StoreConfig) PostgresDSN() string {
	if s.DSN != "" {
		return s.DSN
	}
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=disable", s.Host, s.Port, s.Name)
	if s.User != "" {
		dsn += " user=" + s.User
	}
	if s.Password != "" {
		dsn += " password=" + s.Password
	}
	return dsn
}

// Load reads configuration. args are the command-line arguments without the
// program name.
func Load(args []string) (*Config, error) {
	// A missing .env file is fine; the environment may be set elsewhere.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("APP_PORT", ":8000")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "kiosk")
	v.SetDefault("SQLITE_PATH", "kiosk.db")
	v.SetDefault("STORE_TIMEOUT", "5s")
	v.SetDefault("IMAGES_DIR", "resources/images")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.AutomaticEnv()

	flags := pflag.NewFlagSet("kiosk", pflag.ContinueOnError)
	flags.String("port", "", "listen address, overrides APP_PORT")
	flags.String("seed", "", "JSON file with categories and items to load at startup")
	flags.Bool("drop", false, "remove existing menu data before seeding")
	flags.Bool("seed-only", false, "exit after seeding instead of serving")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}
	if err := v.BindPFlag("SEED_FILE", flags.Lookup("seed")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("SEED_DROP", flags.Lookup("drop")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("SEED_ONLY", flags.Lookup("seed-only")); err != nil {
		return nil, err
	}
	if port, _ := flags.GetString("port"); port != "" {
		v.Set("APP_PORT", port)
	}

	cfg := &Config{
		AppPort: v.GetString("APP_PORT"),
		Store: StoreConfig{
			Driver:     strings.ToLower(v.GetString("DB_DRIVER")),
			DSN:        v.GetString("DATABASE_DSN"),
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetInt("DB_PORT"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASSWORD"),
			Name:       v.GetString("DB_NAME"),
			SQLitePath: v.GetString("SQLITE_PATH"),
			Timeout:    v.GetDuration("STORE_TIMEOUT"),
		},
		ImagesDir:   v.GetString("IMAGES_DIR"),
		RabbitMQURL: v.GetString("RABBITMQ_URL"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		LogFormat:   v.GetString("LOG_FORMAT"),
		Seed: SeedConfig{
			File: v.GetString("SEED_FILE"),
			Drop: v.GetBool("SEED_DROP"),
			Only: v.GetBool("SEED_ONLY"),
		},
	}
	if !strings.HasPrefix(cfg.AppPort, ":") && !strings.Contains(cfg.AppPort, ":") {
		cfg.AppPort = ":" + cfg.AppPort
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Store.Driver)
	}
	if c.Store.Timeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT must be positive, got %s", c.Store.Timeout)
	}
	if c.Store.Driver == DriverPostgres && c.Store.DSN == "" && c.Store.Name == "" {
		return fmt.Errorf("DB_NAME is required for the postgres driver")
	}
	if c.Seed.Only && c.Seed.File == "" {
		return fmt.Errorf("--seed-only requires --seed")
	}
	return nil
}
