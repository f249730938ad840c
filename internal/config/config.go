package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/mirelka/SLN-SchedulingService/internal/scheduling"
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig      `toml:"server"`
	Database      DatabaseConfig    `toml:"database"`
	Logs          LogsConfig        `toml:"logs"`
	Metrics       MetricsConfig     `toml:"metrics"`
	StaffService  IntegrationConfig `toml:"staff_service"`
	ClientService IntegrationConfig `toml:"client_service"`
	Scheduling    SchedulingConfig  `toml:"scheduling"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // в секундах
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// IntegrationConfig настройки HTTP клиента внешнего сервиса (таймаут в секундах)
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// SchedulingConfig настройки планирования записей
type SchedulingConfig struct {
	SlotGranularityMinutes    int `toml:"slot_granularity_minutes"`
	MaxRecurrenceOccurrences  int `toml:"max_recurrence_occurrences"`
	MinServiceDurationMinutes int `toml:"min_service_duration_minutes"`
	MaxServiceDurationMinutes int `toml:"max_service_duration_minutes"`
	MaxWaitMinutes            int `toml:"max_wait_minutes"`
	NoticeMinutes             int `toml:"notice_minutes"`
	ArchiveAfterDays          int `toml:"archive_after_days"`
	ArchiveSweepMinutes       int `toml:"archive_sweep_minutes"`
}

// ToLimits конвертирует настройки планирования в предельные значения движка
// Нулевые значения заменяются дефолтами
func (s SchedulingConfig) ToLimits() scheduling.Limits {
	return scheduling.Limits{
		SlotGranularityMinutes:    s.SlotGranularityMinutes,
		MaxRecurrenceOccurrences:  s.MaxRecurrenceOccurrences,
		MinServiceDurationMinutes: s.MinServiceDurationMinutes,
		MaxServiceDurationMinutes: s.MaxServiceDurationMinutes,
		MaxWaitMinutes:            s.MaxWaitMinutes,
	}.Normalized()
}

// Load читает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("server.http_port must be positive")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database.dbname is required")
	}
	if c.StaffService.URL == "" {
		return fmt.Errorf("staff_service.url is required")
	}
	if c.ClientService.URL == "" {
		return fmt.Errorf("client_service.url is required")
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("metrics.path is required when metrics are enabled")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout <= 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns <= 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns <= 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime <= 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.StaffService.Timeout <= 0 {
		c.StaffService.Timeout = 5
	}
	if c.ClientService.Timeout <= 0 {
		c.ClientService.Timeout = 5
	}
	if c.Scheduling.ArchiveSweepMinutes <= 0 {
		c.Scheduling.ArchiveSweepMinutes = 60
	}
}
