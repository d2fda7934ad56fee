package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Booking  BookingConfig  `yaml:"booking"`
	Worker   WorkerConfig   `yaml:"worker"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	RequestEventsTopic string   `yaml:"request_events_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type BookingConfig struct {
	OpenTime      string `yaml:"open_time"`
	CloseTime     string `yaml:"close_time"`
	SlotMinutes   int    `yaml:"slot_minutes"`
	RoomsCacheTTL int    `yaml:"rooms_cache_ttl_seconds"`
	BoardCacheTTL int    `yaml:"board_cache_ttl_seconds"`
}

type WorkerConfig struct {
	StaleSweepMinutes int `yaml:"stale_sweep_minutes"`
	StaleAfterMinutes int `yaml:"stale_after_minutes"`
}

// Validate rejects sweep settings the worker cannot run with: a ticker
// cadence must be positive and a zero stale age would reject every pending
// request on the first sweep.
func (w WorkerConfig) Validate() error {
	if w.StaleSweepMinutes <= 0 {
		return fmt.Errorf("stale_sweep_minutes must be positive, got %d", w.StaleSweepMinutes)
	}
	if w.StaleAfterMinutes <= 0 {
		return fmt.Errorf("stale_after_minutes must be positive, got %d", w.StaleAfterMinutes)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
