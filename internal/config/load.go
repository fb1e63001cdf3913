package config

// This file implements the viper layer: defaults, SIZECAP_* environment
// variables, and an optional YAML config file. CLI flags are bound by the cli
// package and take precedence over everything here.

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load layers env vars and an optional config file over cfg. configPath may be
// empty, in which case only SIZECAP_* environment variables apply. A missing
// file at an explicit configPath is an error; any other read failure too.
func Load(cfg *Config, configPath string) error {
	v := viper.New()
	v.SetEnvPrefix("SIZECAP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	setDefaults(v, cfg)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %q: %w", configPath, err)
		}
	}

	apply(v, cfg)
	return nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("size", cfg.SizeMB)
	v.SetDefault("overhead", cfg.OverheadFactor)
	v.SetDefault("codec", string(cfg.Codec))
	v.SetDefault("preset", cfg.Preset)
	v.SetDefault("audio-kbps", cfg.AudioKbps)
	v.SetDefault("mode", string(cfg.Mode))
	v.SetDefault("auto-scale", cfg.AutoScale)
	v.SetDefault("log-level", cfg.LogLevel)
	v.SetDefault("log-format", string(cfg.LogFormat))
}

func apply(v *viper.Viper, cfg *Config) {
	// SizeMBSet tracks whether the value still equals the built-in default, so
	// Validate can pick the capped-mode default when appropriate.
	if size := v.GetFloat64("size"); size != DefaultSizeMBTwoPass {
		cfg.SizeMB = size
		cfg.SizeMBSet = true
	}
	cfg.OverheadFactor = v.GetFloat64("overhead")
	cfg.Codec = Codec(v.GetString("codec"))
	cfg.Preset = v.GetString("preset")
	cfg.AudioKbps = v.GetInt("audio-kbps")
	cfg.Mode = RateMode(v.GetString("mode"))
	cfg.AutoScale = v.GetBool("auto-scale")
	cfg.LogLevel = v.GetString("log-level")
	cfg.LogFormat = LogFormat(v.GetString("log-format"))
}
