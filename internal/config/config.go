// README: Config loader; viper-backed yaml with env override, validation and
// live reload of tracking inputs.
package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"trackmap/internal/geo"
)

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type OSRMConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=0"`
}

type RefreshConfig struct {
	IntervalSeconds int `mapstructure:"interval_seconds" validate:"gt=0"`
}

// RedisConfig is optional; an empty Addr disables publishing.
type RedisConfig struct {
	Addr    string `mapstructure:"addr"`
	Channel string `mapstructure:"channel"`
}

// TrackingConfig is the initial input set for the tracked trip. Coordinates
// are range-checked here, at the config boundary only.
type TrackingConfig struct {
	Start     geo.Point `mapstructure:"start"`
	End       geo.Point `mapstructure:"end"`
	Vehicle   geo.Point `mapstructure:"vehicle"`
	IsRouting bool      `mapstructure:"is_routing"`
}

type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	OSRM     OSRMConfig     `mapstructure:"osrm"`
	Refresh  RefreshConfig  `mapstructure:"refresh"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Tracking TrackingConfig `mapstructure:"tracking"`
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TRACKMAP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("osrm.base_url", "https://router.project-osrm.org/route/v1/driving")
	v.SetDefault("osrm.timeout_seconds", 10)
	v.SetDefault("refresh.interval_seconds", 60)
	v.SetDefault("redis.channel", "trackmap:view")
	return v
}

// Load reads and validates the configuration file.
func Load(path string) (*Config, error) {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Watch re-reads the file whenever it changes and hands the fresh config to
// apply. A reload that fails to parse or validate is logged and skipped; the
// running configuration stays in effect.
func Watch(path string, apply func(*Config)) {
	v := newViper(path)
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := Load(path)
		if err != nil {
			log.Printf("config: reload of %s skipped: %v", e.Name, err)
			return
		}
		apply(cfg)
	})
}
