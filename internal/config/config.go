package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig
	Client   ClientConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	CacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

type ClientConfig struct {
	BaseURL           string
	OrderPollInterval time.Duration
	QueuePollInterval time.Duration
	RequestTimeout    time.Duration
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 3001)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "foodlocker")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "food_locker")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_CACHE_TTL", "1m")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("API_BASE_URL", "http://localhost:3001")
	viper.SetDefault("ORDER_POLL_INTERVAL", "2s")
	viper.SetDefault("QUEUE_POLL_INTERVAL", "3s")
	viper.SetDefault("REQUEST_TIMEOUT", "10s")

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}

	cacheTTL, err := time.ParseDuration(viper.GetString("REDIS_CACHE_TTL"))
	if err != nil {
		return nil, err
	}

	orderPoll, err := time.ParseDuration(viper.GetString("ORDER_POLL_INTERVAL"))
	if err != nil {
		return nil, err
	}

	queuePoll, err := time.ParseDuration(viper.GetString("QUEUE_POLL_INTERVAL"))
	if err != nil {
		return nil, err
	}

	requestTimeout, err := time.ParseDuration(viper.GetString("REQUEST_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			CacheTTL: cacheTTL,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Client: ClientConfig{
			BaseURL:           viper.GetString("API_BASE_URL"),
			OrderPollInterval: orderPoll,
			QueuePollInterval: queuePoll,
			RequestTimeout:    requestTimeout,
		},
	}

	return cfg, nil
}
