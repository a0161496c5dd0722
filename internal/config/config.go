package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"matcher-service/internal/reconcile/model"
)

const envPrefix = "MATCHER"

type Config struct {
	Host         string   `mapstructure:"host"`
	Port         int      `mapstructure:"port"`
	AllowOrigins []string `mapstructure:"allow_origins"`
	LogLevel     string   `mapstructure:"log_level"`
	MaxUploadMB  int      `mapstructure:"max_upload_mb"`
	LogFile      string   `mapstructure:"log_file"`
	MatchPerMin  int      `mapstructure:"match_per_min"` // лимит POST /match на IP, 0 — выкл.
	MatchBurst   int      `mapstructure:"match_burst"`
	Engine       Engine   `mapstructure:"engine"`
}

// Engine — настройки движка в файле/окружении (MATCHER_ENGINE_WORKERS и т.п.).
type Engine struct {
	Weights       model.Weights `mapstructure:"weights"`
	Algorithms    []string      `mapstructure:"algorithms"`
	Strategy      string        `mapstructure:"strategy"`
	MinSimilarity float64       `mapstructure:"min_similarity"`
	Workers       int           `mapstructure:"workers"`
	CacheSize     int           `mapstructure:"cache_size"`
	Parallel      bool          `mapstructure:"parallel"`
}

// Load: дефолты → config.yaml (если есть) → переменные MATCHER_*.
// path — явный файл конфигурации, пусто — искать config.yaml в . и ./config.
func Load(path string) (Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("port", 8082)
	v.SetDefault("allow_origins", []string{"*"})
	v.SetDefault("log_level", "info")
	v.SetDefault("max_upload_mb", 256)
	v.SetDefault("log_file", "logs/matcher-service.log")
	v.SetDefault("match_per_min", 0)
	v.SetDefault("match_burst", 5)

	d := model.DefaultEngineConfig()
	v.SetDefault("engine.weights.name", d.Weights.Name)
	v.SetDefault("engine.weights.description", d.Weights.Description)
	v.SetDefault("engine.weights.category", d.Weights.Category)
	v.SetDefault("engine.weights.brand", d.Weights.Brand)
	v.SetDefault("engine.weights.specifications", d.Weights.Specifications)
	v.SetDefault("engine.algorithms", []string{})
	v.SetDefault("engine.strategy", string(d.Strategy))
	v.SetDefault("engine.min_similarity", d.MinSimilarity)
	v.SetDefault("engine.workers", d.Workers)
	v.SetDefault("engine.cache_size", d.CacheSize)
	v.SetDefault("engine.parallel", d.Parallel)
}

// validate проверяет только серверную часть; движок валидирует себя сам в NewEngine.
func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be within 1-65535, got %d", c.Port)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max_upload_mb must be positive, got %d", c.MaxUploadMB)
	}
	return nil
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// EngineConfig переводит настройки в конфигурацию движка.
func (c Config) EngineConfig() model.EngineConfig {
	return model.EngineConfig{
		Weights:       c.Engine.Weights,
		Algorithms:    model.ParseAlgorithms(c.Engine.Algorithms),
		Strategy:      model.Strategy(strings.ToLower(strings.TrimSpace(c.Engine.Strategy))),
		MinSimilarity: c.Engine.MinSimilarity,
		Workers:       c.Engine.Workers,
		CacheSize:     c.Engine.CacheSize,
		Parallel:      c.Engine.Parallel,
	}
}
