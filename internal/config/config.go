package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// The window maxima are empirical: the largest 5-hour totals observed on a
// Max plan, not limits the producer reports. They only bound the usage
// percentage display, so overriding them is safe.
const (
	DefaultMaxWindowTokens = 58679737
	DefaultMaxWindowCost   = 127.27
	DefaultBarWidth        = 48
)

// Limits bounds the usage-percentage calculation for the current session
// window and sets the timeline bar resolution.
type Limits struct {
	MaxWindowTokens int     `mapstructure:"max_window_tokens"`
	MaxWindowCost   float64 `mapstructure:"max_window_cost"`
	BarWidth        int     `mapstructure:"bar_width"`
}

// Load reads limits from ~/.config/cctimeline/config.yaml and CCTIMELINE_*
// environment variables, falling back to the built-in defaults. A missing
// config file is not an error.
func Load() (Limits, error) {
	v := viper.New()
	v.SetDefault("max_window_tokens", DefaultMaxWindowTokens)
	v.SetDefault("max_window_cost", DefaultMaxWindowCost)
	v.SetDefault("bar_width", DefaultBarWidth)

	v.SetEnvPrefix("CCTIMELINE")
	v.AutomaticEnv()

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "cctimeline"))
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Limits{}, fmt.Errorf("read config: %w", err)
		}
	}

	var limits Limits
	if err := v.Unmarshal(&limits); err != nil {
		return Limits{}, fmt.Errorf("parse config: %w", err)
	}
	if limits.BarWidth <= 0 {
		limits.BarWidth = DefaultBarWidth
	}
	return limits, nil
}
