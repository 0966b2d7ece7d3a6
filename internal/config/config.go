package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	devJWTKey        = "catalog-dev-jwt-key-change-in-production"
	devEncryptionKey = "catalog-dev-encryption-key-change-me"
	devEncryptionIV  = "catalog-dev-iv-0"
)

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config chứa toàn bộ application configuration
// Thứ tự ưu tiên: defaults -> YAML file (APP_CONFIG_FILE) -> environment variables
type Config struct {
	App      AppConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Security SecurityConfig
	Store    StoreConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Password string
	DB       int
	BookTTL  time.Duration // TTL cache book theo id
}

// JWTConfig mirrors the JWT section of the security settings.
type JWTConfig struct {
	Key              string
	Issuer           string
	Audience         string
	ValidateIssuer   bool
	ValidateAudience bool
}

// SecurityConfig holds the field cipher material.
type SecurityConfig struct {
	EncryptionKey string
	EncryptionIV  string
}

type StoreConfig struct {
	Driver string // postgres | memory
}

// fileConfig là schema của YAML file, tách riêng để env vẫn override được
type fileConfig struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        string `yaml:"port"`
	} `yaml:"app"`
	JWT struct {
		Key              string `yaml:"key"`
		Issuer           string `yaml:"issuer"`
		Audience         string `yaml:"audience"`
		ValidateIssuer   bool   `yaml:"validate_issuer"`
		ValidateAudience bool   `yaml:"validate_audience"`
	} `yaml:"jwt"`
	Security struct {
		EncryptionKey string `yaml:"encryption_key"`
		EncryptionIV  string `yaml:"encryption_iv"`
	} `yaml:"security"`
}

// Load đọc config từ YAML file (optional) và environment variables
func Load() (*Config, error) {
	var file fileConfig
	if path := os.Getenv("APP_CONFIG_FILE"); path != "" {
		f, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		file = *f
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", or(file.App.Name, "Catalog API")),
			Environment: getEnv("APP_ENV", or(file.App.Environment, "development")),
			Port:        getEnv("APP_PORT", or(file.App.Port, "8080")),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", true),
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			BookTTL:  getEnvDuration("CACHE_BOOK_TTL", 10*time.Minute),
		},
		JWT: JWTConfig{
			Key:              getEnv("JWT_KEY", or(file.JWT.Key, devJWTKey)),
			Issuer:           getEnv("JWT_ISSUER", file.JWT.Issuer),
			Audience:         getEnv("JWT_AUDIENCE", file.JWT.Audience),
			ValidateIssuer:   getEnvBool("JWT_VALIDATE_ISSUER", file.JWT.ValidateIssuer),
			ValidateAudience: getEnvBool("JWT_VALIDATE_AUDIENCE", file.JWT.ValidateAudience),
		},
		Security: SecurityConfig{
			EncryptionKey: getEnv("ENCRYPTION_KEY", or(file.Security.EncryptionKey, devEncryptionKey)),
			EncryptionIV:  getEnv("ENCRYPTION_IV", or(file.Security.EncryptionIV, devEncryptionIV)),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func loadFile(path string) (*fileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var f fileConfig
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return &f, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	var errs []error

	if c.JWT.Key == "" {
		errs = append(errs, errors.New("JWT_KEY must be set"))
	}
	if c.Security.EncryptionKey == "" {
		errs = append(errs, errors.New("ENCRYPTION_KEY must be set"))
	}
	if c.Security.EncryptionIV == "" {
		errs = append(errs, errors.New("ENCRYPTION_IV must be set"))
	}
	if c.Store.Driver != StoreDriverPostgres && c.Store.Driver != StoreDriverMemory {
		errs = append(errs, fmt.Errorf("STORE_DRIVER %q is not supported", c.Store.Driver))
	}

	// Production environment không được dùng secret mặc định
	if c.IsProduction() {
		if c.JWT.Key == devJWTKey {
			errs = append(errs, errors.New("JWT_KEY must be set in production"))
		}
		if c.Security.EncryptionKey == devEncryptionKey || c.Security.EncryptionIV == devEncryptionIV {
			errs = append(errs, errors.New("ENCRYPTION_KEY and ENCRYPTION_IV must be set in production"))
		}
		if c.Store.Driver == StoreDriverMemory {
			errs = append(errs, errors.New("memory store is not allowed in production"))
		}
	}

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func or(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
