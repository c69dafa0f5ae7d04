package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Artifacts ArtifactsConfig `mapstructure:"artifacts"`
	Frontend  FrontendConfig  `mapstructure:"frontend"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port string
	Mode string
}

// ArtifactsConfig 模型产物目录配置
// 模型与难度统计由离线训练产出，服务只读取，不训练
type ArtifactsConfig struct {
	Dir            string `mapstructure:"dir"`
	ModelFile      string `mapstructure:"model_file"`
	DifficultyFile string `mapstructure:"difficulty_file"`
	Watch          bool   `mapstructure:"watch"`
}

type FrontendConfig struct {
	StaticDir string `mapstructure:"static_dir"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func (c *ArtifactsConfig) ModelPath() string {
	return c.Dir + "/" + c.ModelFile
}

func (c *ArtifactsConfig) DifficultyPath() string {
	return c.Dir + "/" + c.DifficultyFile
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("LEARNING_INSIGHT")
	viper.AutomaticEnv()

	// Server
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Artifacts
	viper.BindEnv("artifacts.dir", "ARTIFACTS_DIR")
	viper.BindEnv("artifacts.model_file", "ARTIFACTS_MODEL_FILE")
	viper.BindEnv("artifacts.difficulty_file", "ARTIFACTS_DIFFICULTY_FILE")
	viper.BindEnv("artifacts.watch", "ARTIFACTS_WATCH")

	// Frontend
	viper.BindEnv("frontend.static_dir", "FRONTEND_STATIC_DIR")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	viper.SetDefault("server.port", "8000")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("artifacts.dir", "models")
	viper.SetDefault("artifacts.model_file", "completion_model.json")
	viper.SetDefault("artifacts.difficulty_file", "difficulty_stats.csv")
	viper.SetDefault("rate_limit.max_requests", 6000)
	viper.SetDefault("rate_limit.window_minutes", 1)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Artifacts.Dir == "" {
		return nil, fmt.Errorf("artifacts.dir must not be empty")
	}

	return &cfg, nil
}
