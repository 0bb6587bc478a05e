package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort             int           `mapstructure:"APP_PORT"`
	DatabasePath        string        `mapstructure:"DATABASE_PATH"`
	OllamaURL           string        `mapstructure:"OLLAMA_URL"`
	OllamaTimeout       time.Duration `mapstructure:"OLLAMA_TIMEOUT"`
	OllamaMaxRPS        float64       `mapstructure:"OLLAMA_MAX_RPS"`
	OllamaStartupWait   time.Duration `mapstructure:"OLLAMA_STARTUP_WAIT"`
	Temperature         float64       `mapstructure:"GENERATION_TEMPERATURE"`
	MaxTokens           int           `mapstructure:"GENERATION_MAX_TOKENS"`
	InitialSystemPrompt string        `mapstructure:"INITIAL_SYSTEM_PROMPT"`
	UploadDir           string        `mapstructure:"UPLOAD_DIR"`
	MaxUploadMB         int64         `mapstructure:"MAX_UPLOAD_MB"`
	CORSOrigins         []string      `mapstructure:"CORS_ORIGINS"`
	LogLevel            string        `mapstructure:"LOG_LEVEL"`

	// ConfigFileUsed is the .env file that was read, empty when none was found.
	ConfigFileUsed string `mapstructure:"-"`
}

// MaxUploadBytes is the request size limit for uploads.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", 8000)
	v.SetDefault("DATABASE_PATH", "/data/viz.db")
	v.SetDefault("OLLAMA_URL", "http://ollama:11434")
	v.SetDefault("OLLAMA_TIMEOUT", 120*time.Second)
	v.SetDefault("OLLAMA_MAX_RPS", 2.0)
	v.SetDefault("OLLAMA_STARTUP_WAIT", 30*time.Second)
	v.SetDefault("GENERATION_TEMPERATURE", 0.3)
	v.SetDefault("GENERATION_MAX_TOKENS", 4000)
	v.SetDefault("INITIAL_SYSTEM_PROMPT", "You are a helpful data visualization assistant.")
	v.SetDefault("UPLOAD_DIR", "/data/uploads")
	v.SetDefault("MAX_UPLOAD_MB", 50)
	v.SetDefault("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("LOG_LEVEL", "INFO")
}

// LoadConfig reads defaults, an optional .env file and the environment, in
// increasing order of precedence.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(".env")
	v.SetConfigType("env")
	if len(paths) == 0 {
		paths = []string{".", "./backend"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.ConfigFileUsed = v.ConfigFileUsed()

	return &cfg, nil
}
