package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"ferrybackend/internal/pricing"
)

// Config holds all runtime settings for the service.
type Config struct {
	Server ServerConfig
	MySQL  MySQLConfig
	Redis  RedisConfig
	Fares  pricing.Config
	Alerts AlertConfig
}

type ServerConfig struct {
	Addr    string
	GinMode string
}

type MySQLConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AlertConfig controls the availability-alert window and expiry sweep.
type AlertConfig struct {
	WindowDays    int
	SweepInterval time.Duration
	CountCacheTTL time.Duration
}

// DSN returns the MySQL connection string.
func (m MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s",
		m.User, m.Password, m.Host, m.Port, m.DBName)
}

// Addr returns the Redis address in host:port format.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Load reads configuration from environment variables and an optional .env
// file, with defaults for local development.
func Load() Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("APP_ADDR", ":8080")
	viper.SetDefault("GIN_MODE", "")

	viper.SetDefault("MYSQL_HOST", "127.0.0.1")
	viper.SetDefault("MYSQL_PORT", 3306)
	viper.SetDefault("MYSQL_USER", "root")
	viper.SetDefault("MYSQL_PASSWORD", "")
	viper.SetDefault("MYSQL_DB", "ferry_app")

	viper.SetDefault("REDIS_HOST", "127.0.0.1")
	viper.SetDefault("REDIS_PORT", 6379)
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	def := pricing.DefaultConfig()
	viper.SetDefault("FARE_CHILD_FACTOR", def.ChildFactor)
	viper.SetDefault("FARE_INFANT_FACTOR", def.InfantFactor)
	viper.SetDefault("FARE_TAX_RATE", def.TaxRate)
	viper.SetDefault("FARE_VEHICLE_SURCHARGE_CENTS", def.VehicleSurchargeCents)
	viper.SetDefault("FARE_PROTECTION_CENTS", def.ProtectionCents)

	viper.SetDefault("ALERT_WINDOW_DAYS", 30)
	viper.SetDefault("ALERT_SWEEP_INTERVAL", "5m")
	viper.SetDefault("ALERT_COUNT_CACHE_TTL", "1m")

	// Missing .env is fine; env vars take over (e.g. inside Docker).
	_ = viper.ReadInConfig()

	return Config{
		Server: ServerConfig{
			Addr:    viper.GetString("APP_ADDR"),
			GinMode: viper.GetString("GIN_MODE"),
		},
		MySQL: MySQLConfig{
			Host:     viper.GetString("MYSQL_HOST"),
			Port:     viper.GetInt("MYSQL_PORT"),
			User:     viper.GetString("MYSQL_USER"),
			Password: viper.GetString("MYSQL_PASSWORD"),
			DBName:   viper.GetString("MYSQL_DB"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Fares: pricing.Config{
			ChildFactor:           viper.GetFloat64("FARE_CHILD_FACTOR"),
			InfantFactor:          viper.GetFloat64("FARE_INFANT_FACTOR"),
			TaxRate:               viper.GetFloat64("FARE_TAX_RATE"),
			VehicleSurchargeCents: viper.GetInt64("FARE_VEHICLE_SURCHARGE_CENTS"),
			ProtectionCents:       viper.GetInt64("FARE_PROTECTION_CENTS"),
		},
		Alerts: AlertConfig{
			WindowDays:    viper.GetInt("ALERT_WINDOW_DAYS"),
			SweepInterval: viper.GetDuration("ALERT_SWEEP_INTERVAL"),
			CountCacheTTL: viper.GetDuration("ALERT_COUNT_CACHE_TTL"),
		},
	}
}
