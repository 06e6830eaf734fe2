// Package config reads chartdemo settings from the environment.
package config

import (
	"fmt"
	"log/slog"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name, e.g. CHARTDEMO_WIDTH.
const Prefix = "chartdemo"

type Config struct {
	Width     int     `envconfig:"WIDTH" default:"800"`
	Height    int     `envconfig:"HEIGHT" default:"600"`
	Backend   string  `envconfig:"BACKEND" default:"raster"`
	Output    string  `envconfig:"OUTPUT" default:"chart.png"`
	LogLevel  string  `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string  `envconfig:"LOG_FORMAT" default:"auto"`
	FontSize  float64 `envconfig:"FONT_SIZE" default:"0"`
	CacheSize int     `envconfig:"LABEL_CACHE_SIZE" default:"256"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("config: invalid size %dx%d", cfg.Width, cfg.Height)
	}
	switch cfg.LogFormat {
	case "auto", "text", "json":
	default:
		return nil, fmt.Errorf("config: unknown log format %q", cfg.LogFormat)
	}
	return &cfg, nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: %w", err)
	}
	return l, nil
}
