package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"upvotes_analyzer/internal/analyzer"
)

const (
	configFilePathENV = "CONFIG_FILE"
	configDir         = "configs"
	defaultConfigFile = "values_local.yaml"
)

// Config ...
type Config struct {
	Service struct {
		Name       string `mapstructure:"name"`
		Host       string `mapstructure:"host"`
		PublicPort int    `mapstructure:"public_port"`
		AdminPort  int    `mapstructure:"admin_port"`
	} `mapstructure:"service"`

	Log struct {
		Level string `mapstructure:"level"` // debug | info | warn | error
	} `mapstructure:"log"`

	Analyzer struct {
		Mode    string `mapstructure:"mode"`    // sliding | linear | exhaustive
		Workers int    `mapstructure:"workers"` // >1 — параллельно по окнам (linear/exhaustive)
	} `mapstructure:"analyzer"`

	// пустой DSN — прогоны храним в памяти
	DB         string `mapstructure:"db_dsn"`
	DBMaxConns int32  `mapstructure:"db_max_conns"`

	Cache struct {
		Size int `mapstructure:"size"` // 0 — без локального кэша
	} `mapstructure:"cache"`

	Redis struct {
		Addr     string        `mapstructure:"addr"`
		Password string        `mapstructure:"password"`
		DB       int           `mapstructure:"db"`
		TTL      time.Duration `mapstructure:"ttl"`
	} `mapstructure:"redis"`

	Telegram struct {
		Token  string `mapstructure:"token"`
		ChatID int64  `mapstructure:"chat_id"`
	} `mapstructure:"telegram"`

	Tracing struct {
		Enabled     bool    `mapstructure:"enabled"`
		Host        string  `mapstructure:"host"`
		Port        int     `mapstructure:"port"`
		SampleRatio float64 `mapstructure:"sample_ratio"`
	} `mapstructure:"tracing"`
}

// NewConfig читает configs/<CONFIG_FILE>, затем переопределяет значения из env.
// Отсутствие файла не ошибка: остаются дефолты.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = defaultConfigFile
	}
	v.SetConfigFile(filepath.Join(configDir, configFileName))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "read config file")
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, err := analyzer.ParseMode(c.Analyzer.Mode); err != nil {
		return errors.Wrap(err, "analyzer.mode")
	}
	if c.Analyzer.Workers < 1 {
		return errors.Errorf("analyzer.workers must be positive, got %d", c.Analyzer.Workers)
	}
	if c.Cache.Size < 0 {
		return errors.Errorf("cache.size must not be negative, got %d", c.Cache.Size)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.name", "upvotes-analyzer")
	v.SetDefault("service.host", "0.0.0.0")
	v.SetDefault("service.public_port", 8080)
	v.SetDefault("service.admin_port", 8081)

	v.SetDefault("log.level", "info")

	v.SetDefault("analyzer.mode", string(analyzer.ModeSliding))
	v.SetDefault("analyzer.workers", 1)

	v.SetDefault("db_dsn", "")
	v.SetDefault("db_max_conns", 4)
	v.SetDefault("cache.size", 1024)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "10m")

	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.chat_id", 0)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.host", "localhost")
	v.SetDefault("tracing.port", 6831)
	v.SetDefault("tracing.sample_ratio", 1.0)
}

// секреты и то, что удобно крутить в docker-compose
func bindEnv(v *viper.Viper) {
	for key, env := range map[string]string{
		"telegram.token":   "TELEGRAM_TOKEN",
		"telegram.chat_id": "TELEGRAM_CHAT_ID",
		"db_dsn":           "DATABASE_DSN",
		"redis.addr":       "REDIS_ADDR",
		"redis.password":   "REDIS_PASSWORD",
		"log.level":        "LOG_LEVEL",
		"analyzer.mode":    "ANALYZER_MODE",
		"analyzer.workers": "ANALYZER_WORKERS",
		"tracing.enabled":  "TRACING_ENABLED",
	} {
		_ = v.BindEnv(key, env)
	}
}
