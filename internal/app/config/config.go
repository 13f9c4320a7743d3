package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"gallery/internal/domain/setting"
	"gallery/internal/domain/thumb"
)

type Config struct {
	DatabaseURL string       `mapstructure:"database_url"`
	HTTPAddr    string       `mapstructure:"http_addr"`
	DataDir     string       `mapstructure:"data_dir"`
	LogLevel    string       `mapstructure:"log_level"`
	Workers     WorkerConfig `mapstructure:"workers"`
	Thumb       ThumbConfig  `mapstructure:"thumb"`
	// Site holds bootstrap values for the remaining runtime settings.
	Site map[string]string `mapstructure:"site"`
}

type WorkerConfig struct {
	Size        int           `mapstructure:"size"`
	TaskTimeout time.Duration `mapstructure:"task_timeout"`
	// LogQueue bounds the audit log backlog; lines beyond it are dropped.
	LogQueue int `mapstructure:"log_queue"`
}

type ThumbConfig struct {
	Engine     string `mapstructure:"engine"`
	Width      int    `mapstructure:"width"`
	Height     int    `mapstructure:"height"`
	Scaling    int    `mapstructure:"scaling"`
	Upscale    bool   `mapstructure:"upscale"`
	Fit        string `mapstructure:"fit"`
	Mime       string `mapstructure:"mime"`
	AlphaColor string `mapstructure:"alpha_color"`
	Quality    int    `mapstructure:"quality"`
}

// Settings renders the thumbnail section under its runtime setting keys.
func (t ThumbConfig) Settings() setting.Map {
	return setting.Map{
		thumb.KeyEngine:     t.Engine,
		thumb.KeyWidth:      strconv.Itoa(t.Width),
		thumb.KeyHeight:     strconv.Itoa(t.Height),
		thumb.KeyScaling:    strconv.Itoa(t.Scaling),
		thumb.KeyUpscale:    strconv.FormatBool(t.Upscale),
		thumb.KeyFit:        t.Fit,
		thumb.KeyMime:       t.Mime,
		thumb.KeyAlphaColor: t.AlphaColor,
		thumb.KeyQuality:    strconv.Itoa(t.Quality),
	}
}

// Defaults is the bottom layer of the runtime settings store.
func (c Config) Defaults() setting.Map {
	m := c.Thumb.Settings()
	for k, v := range c.Site {
		m[k] = v
	}
	return m
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("data_dir", "data")
	v.SetDefault("log_level", "info")

	v.SetDefault("workers.size", 4)
	v.SetDefault("workers.task_timeout", 30*time.Second)
	v.SetDefault("workers.log_queue", 1024)

	v.SetDefault("thumb.engine", "imaging")
	v.SetDefault("thumb.width", 192)
	v.SetDefault("thumb.height", 192)
	v.SetDefault("thumb.scaling", 100)
	v.SetDefault("thumb.upscale", false)
	v.SetDefault("thumb.fit", "fit")
	v.SetDefault("thumb.mime", "image/jpeg")
	v.SetDefault("thumb.alpha_color", "#ffffff")
	v.SetDefault("thumb.quality", 75)

	v.SetDefault("site.title", "Gallery")
	v.SetDefault("site.terms_message", "By viewing this site, you agree to its terms of use.")
	v.SetDefault("site.login_memory", "365")
	v.SetDefault("site.notes_notes_per_page", "20")
	v.SetDefault("site.notes_requests_per_page", "20")
	v.SetDefault("site.notes_histories_per_page", "20")
}

// Load reads config.yaml from ./config or the working directory, then
// applies environment overrides. A missing file is not an error.
func Load() (Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key, env := range map[string]string{
		"database_url": "DATABASE_URL",
		"http_addr":    "HTTP_ADDR",
		"data_dir":     "DATA_DIR",
		"log_level":    "LOG_LEVEL",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, err
		}
	}
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Workers.Size <= 0 {
		return Config{}, fmt.Errorf("workers.size must be positive, got %d", cfg.Workers.Size)
	}
	if cfg.Workers.TaskTimeout <= 0 {
		return Config{}, fmt.Errorf("workers.task_timeout must be positive, got %s", cfg.Workers.TaskTimeout)
	}
	if cfg.Workers.LogQueue < 0 {
		return Config{}, fmt.Errorf("workers.log_queue must not be negative, got %d", cfg.Workers.LogQueue)
	}
	return cfg, nil
}
