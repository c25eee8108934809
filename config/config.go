package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Storage  StorageConfig  `yaml:"storage"`
	JWT      JWTConfig      `yaml:"jwt"`
	Trash    TrashConfig    `yaml:"trash"`
	LogLevel string         `yaml:"log_level"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	Database     string `yaml:"database"`
	Charset      string `yaml:"charset"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type StorageConfig struct {
	BasePath string `yaml:"base_path"`
	// MaxFileSize is the hard upload ceiling in bytes.
	MaxFileSize int64 `yaml:"max_file_size"`
	// ChunkSize is the streaming copy buffer used while enforcing the ceiling.
	ChunkSize int64 `yaml:"chunk_size"`
}

type JWTConfig struct {
	Secret             string `yaml:"secret"`
	RefreshSecret      string `yaml:"refresh_secret"`
	ExpireMinutes      int    `yaml:"expire_minutes"`
	RefreshExpireHours int    `yaml:"refresh_expire_hours"`
}

type TrashConfig struct {
	// RetentionDays is how long a soft-deleted file survives before the
	// scheduled sweep purges it.
	RetentionDays int `yaml:"retention_days"`
	// SweepIntervalSeconds is how often the sweep runs.
	SweepIntervalSeconds int `yaml:"sweep_interval_seconds"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Database.Charset == "" {
		cfg.Database.Charset = "utf8mb4"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "data"
	}
	if cfg.Storage.MaxFileSize == 0 {
		cfg.Storage.MaxFileSize = 10 << 20
	}
	if cfg.Storage.ChunkSize == 0 {
		cfg.Storage.ChunkSize = 8 << 10
	}
	if cfg.JWT.ExpireMinutes == 0 {
		cfg.JWT.ExpireMinutes = 30
	}
	if cfg.JWT.RefreshExpireHours == 0 {
		cfg.JWT.RefreshExpireHours = 24 * 30
	}
	if cfg.Trash.RetentionDays == 0 {
		cfg.Trash.RetentionDays = 7
	}
	if cfg.Trash.SweepIntervalSeconds == 0 {
		cfg.Trash.SweepIntervalSeconds = 3600
	}
}
