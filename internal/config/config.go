// Package config загружает конфигурацию сервиса из TOML файла.
package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Поддерживаемые хранилища черновиков
const (
	DraftStoreRedis  = "redis"
	DraftStoreMemory = "memory"
)

var (
	// ErrReadConfig возвращается при ошибке чтения или разбора файла
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config корневая конфигурация сервиса
type Config struct {
	Server          Server          `toml:"server"`
	Database        Database        `toml:"database"`
	Redis           Redis           `toml:"redis"`
	Drafts          Drafts          `toml:"drafts"`
	Booking         Booking         `toml:"booking"`
	Logs            Logs            `toml:"logs"`
	Metrics         Metrics         `toml:"metrics"`
	Events          Events          `toml:"events"`
	ScheduleService ScheduleService `toml:"schedule_service"`
	UserService     UserService     `toml:"user_service"`
}

// Server настройки HTTP сервера (таймауты в секундах)
type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// Database настройки подключения к PostgreSQL
type Database struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN собирает строку подключения для lib/pq
func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Redis настройки подключения к Redis (хранилище черновиков)
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	PoolSize int    `toml:"pool_size"`
}

// Drafts настройки хранилища черновиков
type Drafts struct {
	Store      string `toml:"store"`       // "redis" или "memory"
	TTLMinutes int    `toml:"ttl_minutes"` // время жизни черновика
}

// Booking общие настройки бронирования
type Booking struct {
	Timezone string `toml:"timezone"` // таймзона по умолчанию, если клиент её не передал
}

// Logs настройки логирования
type Logs struct {
	File  string `toml:"file"`  // пустая строка = stderr
	Level string `toml:"level"` // debug | info | warn | error
}

// Metrics настройки Prometheus метрик
type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Events настройки публикации событий бронирований в RabbitMQ
type Events struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// ScheduleService настройки клиента генератора слотов и каталога
type ScheduleService struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// UserService настройки клиента сервиса пользователей
type UserService struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Drafts.Store == "" {
		cfg.Drafts.Store = DraftStoreMemory
	}
	if cfg.Drafts.TTLMinutes == 0 {
		cfg.Drafts.TTLMinutes = 30
	}
	if cfg.Booking.Timezone == "" {
		cfg.Booking.Timezone = "UTC"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	}
	if cfg.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if cfg.Drafts.Store != DraftStoreRedis && cfg.Drafts.Store != DraftStoreMemory {
		return fmt.Errorf("%w: drafts.store must be %q or %q", ErrInvalidConfig, DraftStoreRedis, DraftStoreMemory)
	}
	if cfg.Drafts.Store == DraftStoreRedis && cfg.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when drafts.store = %q", ErrInvalidConfig, DraftStoreRedis)
	}
	if cfg.Drafts.TTLMinutes < 0 {
		return fmt.Errorf("%w: drafts.ttl_minutes must not be negative", ErrInvalidConfig)
	}
	if cfg.Events.Enabled && cfg.Events.URL == "" {
		return fmt.Errorf("%w: events.url is required when events are enabled", ErrInvalidConfig)
	}
	if cfg.ScheduleService.URL == "" {
		return fmt.Errorf("%w: schedule_service.url is required", ErrInvalidConfig)
	}
	return nil
}
