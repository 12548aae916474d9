package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		App        AppConfig        `mapstructure:"app"`
		Server     ServerConfig     `mapstructure:"server"`
		Database   DatabaseConfig   `mapstructure:"database"`
		Redis      RedisConfig      `mapstructure:"redis"`
		Storage    StorageConfig    `mapstructure:"storage"`
		Scheduling SchedulingConfig `mapstructure:"scheduling"`
	}

	AppConfig struct {
		Env      string `mapstructure:"env"`
		LogLevel string `mapstructure:"log_level"`
	}

	ServerConfig struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	}

	DatabaseConfig struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		DBName   string `mapstructure:"dbname"`
		SSLMode  string `mapstructure:"sslmode"`
	}

	RedisConfig struct {
		Enabled  bool   `mapstructure:"enabled"`
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	}

	// StorageConfig selects the repository backend. The in-memory driver is
	// the session-scoped default; postgres persists across restarts.
	StorageConfig struct {
		Driver string `mapstructure:"driver"` // "memory" or "postgres"
	}

	SchedulingConfig struct {
		CacheTTLSeconds     int `mapstructure:"cache_ttl_seconds"`
		ReminderLeadMinutes int `mapstructure:"reminder_lead_minutes"`
	}
)

var (
	mu       sync.RWMutex
	instance *Config
)

// Load reads configuration from the environment (and an optional .env file)
// and stores the singleton returned by Get/GetSafe.
func Load() (*Config, error) {
	_ = godotenv.Load() // best effort; env vars win anyway

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "scheduling")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("storage.driver", "memory")
	v.SetDefault("scheduling.cache_ttl_seconds", 300)
	v.SetDefault("scheduling.reminder_lead_minutes", 60)

	// Bind explicitly so AutomaticEnv picks up nested keys.
	for _, key := range []string{
		"app.env", "app.log_level",
		"server.host", "server.port",
		"database.host", "database.port", "database.user", "database.password",
		"database.dbname", "database.sslmode",
		"redis.enabled", "redis.addr", "redis.password", "redis.db",
		"storage.driver",
		"scheduling.cache_ttl_seconds", "scheduling.reminder_lead_minutes",
	} {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	mu.Lock()
	instance = &cfg
	mu.Unlock()
	return &cfg, nil
}

// Get returns the loaded config. It panics when called before Load;
// prefer GetSafe in request paths.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		panic("config: Get called before Load")
	}
	return instance
}

func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}
