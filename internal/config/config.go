package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	ConflictPolicyStrict = "strict"
	ConflictPolicyWarn   = "warn"
)

// Config конфигурация сервиса
type Config struct {
	Server          ServerConfig          `toml:"server"`
	Database        DatabaseConfig        `toml:"database"`
	Logs            LogsConfig            `toml:"logs"`
	Metrics         MetricsConfig         `toml:"metrics"`
	Auth            AuthConfig            `toml:"auth"`
	Store           StoreConfig           `toml:"store"`
	Booking         BookingConfig         `toml:"booking"`
	Recommendations RecommendationsConfig `toml:"recommendations"`
	Seed            SeedConfig            `toml:"seed"`
	Exchange        ExchangeConfig        `toml:"exchange"`
	TextGen         TextGenConfig         `toml:"textgen"`
	Weather         WeatherConfig         `toml:"weather"`
	Redis           RedisConfig           `toml:"redis"`
	CORS            CORSConfig            `toml:"cors"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver          string `toml:"driver"` // postgres | sqlite
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	Path            string `toml:"path"` // файл SQLite
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для выбранного драйвера
func (d DatabaseConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

type AuthConfig struct {
	JWTSecret         string `toml:"jwt_secret"`
	TokenTTLMinutes   int    `toml:"token_ttl_minutes"`
	AllowPasswordless bool   `toml:"allow_passwordless"`
}

type StoreConfig struct {
	// Namespace идентификатор арендатора, которым ограничены все запросы
	Namespace string `toml:"namespace"`
}

type BookingConfig struct {
	ConflictPolicy         string `toml:"conflict_policy"`
	ConfirmationTTLSeconds int    `toml:"confirmation_ttl_seconds"`
}

type RecommendationsConfig struct {
	RecencyDays int `toml:"recency_days"`
	Limit       int `toml:"limit"`
}

type SeedMarket struct {
	ID   string `toml:"id"`
	City string `toml:"city"`
	Name string `toml:"name"`
}

type SeedConfig struct {
	Enabled    bool         `toml:"enabled"`
	AdminID    string       `toml:"admin_id"`
	AdminName  string       `toml:"admin_name"`
	VendorID   string       `toml:"vendor_id"`
	VendorName string       `toml:"vendor_name"`
	Markets    []SeedMarket `toml:"markets"`
}

type ExchangeConfig struct {
	Brand string `toml:"brand"`
}

type TextGenConfig struct {
	URL               string  `toml:"url"`
	Model             string  `toml:"model"`
	APIKey            string  `toml:"api_key"`
	Timeout           int     `toml:"timeout"`
	RequestsPerMinute float64 `toml:"requests_per_minute"`
	Burst             int     `toml:"burst"`
}

type WeatherConfig struct {
	Enabled     bool   `toml:"enabled"`
	GeocodeURL  string `toml:"geocode_url"`
	ForecastURL string `toml:"forecast_url"`
	Timeout     int    `toml:"timeout"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Channel  string `toml:"channel"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Load читает конфигурацию из toml файла
// Секреты можно переопределить переменными окружения (в т.ч. из .env)
func Load(path string) (*Config, error) {
	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Driver:          "postgres",
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			ServiceName: "stall-calendar",
			Path:        "/metrics",
		},
		Auth: AuthConfig{
			TokenTTLMinutes:   720,
			AllowPasswordless: true,
		},
		Store: StoreConfig{Namespace: "default"},
		Booking: BookingConfig{
			ConflictPolicy:         ConflictPolicyStrict,
			ConfirmationTTLSeconds: 120,
		},
		Recommendations: RecommendationsConfig{
			RecencyDays: 14,
			Limit:       3,
		},
		Seed: SeedConfig{
			Enabled:    true,
			AdminID:    "sd",
			AdminName:  "順德總",
			VendorID:   "vendor-a",
			VendorName: "攤商A",
		},
		Exchange: ExchangeConfig{Brand: "stall-calendar"},
		TextGen: TextGenConfig{
			URL:               "https://generativelanguage.googleapis.com/v1beta",
			Model:             "gemini-2.0-flash",
			Timeout:           20,
			RequestsPerMinute: 6,
			Burst:             2,
		},
		Weather: WeatherConfig{
			Enabled:     true,
			GeocodeURL:  "https://geocoding-api.open-meteo.com/v1/search",
			ForecastURL: "https://api.open-meteo.com/v1/forecast",
			Timeout:     5,
		},
		Redis: RedisConfig{
			Addr:    "localhost:6379",
			Channel: "stall-calendar:changes",
		},
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres":
	case "sqlite":
		if c.Database.Path == "" {
			return errors.New("config: database.path is required for sqlite")
		}
	default:
		return fmt.Errorf("config: unsupported database.driver %q", c.Database.Driver)
	}

	switch c.Booking.ConflictPolicy {
	case ConflictPolicyStrict, ConflictPolicyWarn:
	default:
		return fmt.Errorf("config: booking.conflict_policy must be %q or %q", ConflictPolicyStrict, ConflictPolicyWarn)
	}

	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("config: auth.jwt_secret is required (or JWT_SECRET env)")
	}
	if strings.TrimSpace(c.Store.Namespace) == "" {
		return errors.New("config: store.namespace is required")
	}
	if c.Booking.ConfirmationTTLSeconds <= 0 {
		return errors.New("config: booking.confirmation_ttl_seconds must be positive")
	}
	if c.Recommendations.RecencyDays < 0 {
		return errors.New("config: recommendations.recency_days must not be negative")
	}
	if c.Seed.Enabled && strings.TrimSpace(c.Seed.AdminID) == "" {
		return errors.New("config: seed.admin_id is required when seeding is enabled")
	}
	if c.Redis.Enabled && c.Redis.Channel == "" {
		return errors.New("config: redis.channel is required when redis is enabled")
	}

	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("TEXTGEN_API_KEY"); v != "" {
		cfg.TextGen.APIKey = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
}
