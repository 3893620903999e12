package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server         ServerConfig         `mapstructure:"server"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Redis          RedisConfig          `mapstructure:"redis"`
	Artifacts      ArtifactsConfig      `mapstructure:"artifacts"`
	Cache          CacheConfig          `mapstructure:"cache"`
	Auth           AuthConfig           `mapstructure:"auth"`
	Logging        LoggingConfig        `mapstructure:"logging"`
	Recommendation RecommendationConfig `mapstructure:"recommendation"`
	Monitoring     MonitoringConfig     `mapstructure:"monitoring"`
	Security       SecurityConfig       `mapstructure:"security"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	URL            string        `mapstructure:"url" validate:"required"`
	MaxConnections int           `mapstructure:"max_connections" validate:"min=1"`
	MaxIdleTime    time.Duration `mapstructure:"max_idle_time"`
	MaxLifetime    time.Duration `mapstructure:"max_lifetime"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type RedisConfig struct {
	URL        string        `mapstructure:"url"`
	MaxRetries int           `mapstructure:"max_retries"`
	PoolSize   int           `mapstructure:"pool_size"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// ArtifactsConfig locates the serialized model artifacts produced by the
// offline training pipeline. All five artifacts are required at startup.
type ArtifactsConfig struct {
	Dir       string `mapstructure:"dir" validate:"required"`
	SchemaDir string `mapstructure:"schema_dir" validate:"required"`
}

type CacheConfig struct {
	// Backend selects the cold-start cache store: "file" or "redis".
	Backend string `mapstructure:"backend" validate:"oneof=file redis"`
	Dir     string `mapstructure:"dir"`
}

type AuthConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	JWTSecret string `mapstructure:"jwt_secret"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RecommendationConfig carries the blend weight tunables. Per-strategy score
// scales are incommensurable; only the relative weights are tuned, never a
// range normalization.
type RecommendationConfig struct {
	HybridWeights       BlendWeights  `mapstructure:"hybrid_weights"`
	AnchoredWeights     BlendWeights  `mapstructure:"anchored_weights"`
	CandidateMultiplier int           `mapstructure:"candidate_multiplier" validate:"min=1"`
	DefaultCount        int           `mapstructure:"default_count" validate:"min=1"`
	MaxCount            int           `mapstructure:"max_count" validate:"min=1"`
	ColdStartTTL        time.Duration `mapstructure:"cold_start_ttl" validate:"gt=0"`
}

type BlendWeights struct {
	Collaborative float64 `mapstructure:"collaborative" validate:"min=0"`
	Content       float64 `mapstructure:"content" validate:"min=0"`
	Popularity    float64 `mapstructure:"popularity" validate:"min=0"`
}

type MonitoringConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	MetricsPath string `mapstructure:"metrics_path"`
}

type SecurityConfig struct {
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

func Load() (*Config, error) {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional, continue with env vars and defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "development")

	// Database defaults
	viper.SetDefault("database.url", "postgres://localhost:5432/shoprec")
	viper.SetDefault("database.max_connections", 25)
	viper.SetDefault("database.max_idle_time", "15m")
	viper.SetDefault("database.max_lifetime", "1h")
	viper.SetDefault("database.connect_timeout", "10s")

	// Redis defaults (only dialed when cache.backend is "redis")
	viper.SetDefault("redis.url", "localhost:6379")
	viper.SetDefault("redis.max_retries", 3)
	viper.SetDefault("redis.pool_size", 10)
	viper.SetDefault("redis.timeout", "5s")

	// Artifact defaults
	viper.SetDefault("artifacts.dir", "./artifacts")
	viper.SetDefault("artifacts.schema_dir", "./schemas")

	// Cache defaults
	viper.SetDefault("cache.backend", "file")
	viper.SetDefault("cache.dir", "./cache")

	// Auth defaults
	viper.SetDefault("auth.enabled", false)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")

	// Recommendation defaults
	viper.SetDefault("recommendation.hybrid_weights.collaborative", 0.5)
	viper.SetDefault("recommendation.hybrid_weights.content", 0.3)
	viper.SetDefault("recommendation.hybrid_weights.popularity", 0.2)
	viper.SetDefault("recommendation.anchored_weights.collaborative", 0.2)
	viper.SetDefault("recommendation.anchored_weights.content", 0.6)
	viper.SetDefault("recommendation.anchored_weights.popularity", 0.2)
	viper.SetDefault("recommendation.candidate_multiplier", 2)
	viper.SetDefault("recommendation.default_count", 10)
	viper.SetDefault("recommendation.max_count", 100)
	viper.SetDefault("recommendation.cold_start_ttl", "120h")

	// Monitoring defaults
	viper.SetDefault("monitoring.enabled", true)
	viper.SetDefault("monitoring.metrics_path", "/metrics")

	// Security defaults
	viper.SetDefault("security.cors.allowed_origins", []string{"*"})
	viper.SetDefault("security.cors.allowed_methods", []string{"GET", "OPTIONS"})
	viper.SetDefault("security.cors.allowed_headers", []string{"*"})
}
