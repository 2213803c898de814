package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Provider ProviderConfig `yaml:"provider"`
	Sync     SyncConfig     `yaml:"sync"`
	Catalog  CatalogConfig  `yaml:"catalog"`
}

type HTTPConfig struct {
	Address     string `yaml:"address"`
	SwaggerFile string `yaml:"swagger_file"`
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
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

// ProviderConfig points at the external flight data API. The access key never
// lives in the yaml file: it comes from the FLIGHT_API_KEY environment
// variable (optionally via .env) and is injected through constructors, so
// there is no process-wide secret accessor.
type ProviderConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	AccessKey      string `yaml:"-"`
}

type SyncConfig struct {
	IntervalHours int `yaml:"interval_hours"`
}

type CatalogConfig struct {
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
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

	_ = godotenv.Load()
	cfg.Provider.AccessKey = os.Getenv("FLIGHT_API_KEY")

	if cfg.Sync.IntervalHours == 0 {
		cfg.Sync.IntervalHours = 12
	}

	return &cfg, nil
}
