package config

import (
	"fmt"
	"strconv"
	"time"

	"catalog-backend/internal/infrastructure/database"
)

// LoadDatabaseConfig đọc config từ environment variables và trả về DBConfig.
// Khác với Load, giá trị sai format là lỗi chứ không fallback về default.
func LoadDatabaseConfig() (*database.DBConfig, error) {
	p := &strictParser{}

	cfg := &database.DBConfig{
		Host:              getEnv("DB_HOST", "localhost"),
		Port:              p.int("DB_PORT", 5432),
		Username:          getEnv("DB_USER", "catalog"),
		Password:          getEnv("DB_PASSWORD", "secret"),
		DBName:            getEnv("DB_NAME", "catalog_dev"),
		SSLMode:           getEnv("DB_SSLMODE", "disable"),
		MaxConns:          int32(p.int("DB_MAX_CONNECTIONS", 25)),
		MinConns:          int32(p.int("DB_MIN_CONNECTIONS", 5)),
		MaxConnLifetime:   p.duration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
		MaxConnIdleTime:   p.duration("DB_MAX_CONN_IDLE_TIME", time.Minute),
		HealthCheckPeriod: p.duration("DB_HEALTH_CHECK_PERIOD", time.Minute),
		MaxRetries:        p.int("DB_MAX_RETRIES", 5),
		RetryDelay:        p.duration("DB_RETRY_DELAY", time.Second),
		ConnectTimeout:    p.duration("DB_CONNECT_TIMEOUT", 10*time.Second),
		AutoMigrate:       getEnvBool("DB_AUTO_MIGRATE", false),
	}
	if p.err != nil {
		return nil, p.err
	}
	if cfg.MinConns > cfg.MaxConns {
		return nil, fmt.Errorf("DB_MIN_CONNECTIONS (%d) exceeds DB_MAX_CONNECTIONS (%d)", cfg.MinConns, cfg.MaxConns)
	}
	return cfg, nil
}

// strictParser giữ lỗi đầu tiên gặp phải
type strictParser struct {
	err error
}

func (p *strictParser) int(key string, def int) int {
	v, err := strconv.Atoi(getEnv(key, strconv.Itoa(def)))
	if err != nil {
		p.fail(fmt.Errorf("invalid %s: %w", key, err))
		return def
	}
	return v
}

func (p *strictParser) duration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, def.String()))
	if err != nil {
		p.fail(fmt.Errorf("invalid %s: %w", key, err))
		return def
	}
	return v
}

func (p *strictParser) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}
