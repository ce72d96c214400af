package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Port int    `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type AuthConfig struct {
	// JWTSecret signs and verifies the HS256 bearer tokens issued by the
	// account service. Requests without a valid token are rejected.
	JWTSecret string `mapstructure:"jwt_secret"`
}

type DatabaseConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxIdle     int    `mapstructure:"max_idle"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
	EnableTLS   bool   `mapstructure:"enable_tls"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	PoolSize  int    `mapstructure:"pool_size"`
	EnableTLS bool   `mapstructure:"enable_tls"`
	// ProgressTTLSec bounds how long a cached project progress summary may
	// be served after the last mutation-driven invalidation.
	ProgressTTLSec int `mapstructure:"progress_ttl_sec"`
}

type RabbitMQRoutingKey struct {
	ProgressChanged string `mapstructure:"progress_changed"`
}

type RabbitMQConfig struct {
	Enabled      bool               `mapstructure:"enabled"`
	URL          string             `mapstructure:"url"`
	EnableTLS    bool               `mapstructure:"enable_tls"`
	ExchangeName string             `mapstructure:"exchange_name"`
	RoutingKey   RabbitMQRoutingKey `mapstructure:"routing_key"`
}

type TelemetryConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	OtlpEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Log       LogConfig       `mapstructure:"log"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RabbitMQ  RabbitMQConfig  `mapstructure:"rabbitmq"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// Load reads config.yaml from the working directory (or CONFIG_PATH) and
// applies environment overrides, e.g. DATABASE_DSN or REDIS_ADDR.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		v.AddConfigPath(p)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.name", "boostify-progress")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("database.max_open", 20)
	v.SetDefault("database.max_idle", 5)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.progress_ttl_sec", 300)
	v.SetDefault("rabbitmq.exchange_name", "boostify.progress")
	v.SetDefault("rabbitmq.routing_key.progress_changed", "progress.changed")
	v.SetDefault("telemetry.sample_ratio", 1.0)

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional, env vars can carry everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
