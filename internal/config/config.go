// Package config holds runtime configuration: defaults, the viper env/file
// layer, and validation. All defaults match the legacy Python script
// (reducesizefordiscord) for parity.
package config

import (
	"errors"
	"fmt"
)

// --- Enum types for validated string fields ---

// Codec selects the video encoder passed to ffmpeg.
type Codec string

const (
	CodecX265 Codec = "libx265" // H.265 (default, better compression).
	CodecX264 Codec = "libx264" // H.264 (compatibility).
)

// RateMode selects the rate-control strategy.
type RateMode string

const (
	// ModeTwoPass runs an analysis pass followed by a final encode pass and
	// enables automatic downscaling (unless --no-auto-scale).
	ModeTwoPass RateMode = "twopass"
	// ModeCapped runs a single pass with a maxrate/bufsize cap around the
	// computed bitrate. No downscaling logic.
	ModeCapped RateMode = "capped"
)

// LogFormat controls the log output encoding.
type LogFormat string

const (
	LogConsole LogFormat = "console" // Human-readable, colored on a TTY (default).
	LogJSON    LogFormat = "json"    // One JSON object per line.
)

// x264/x265 preset names accepted by --preset.
var validPresets = map[string]bool{
	"ultrafast": true,
	"superfast": true,
	"veryfast":  true,
	"faster":    true,
	"fast":      true,
	"medium":    true,
	"slow":      true,
	"slower":    true,
	"veryslow":  true,
}

// Default target sizes in MB. Two-pass targets just under the 10 MB upload
// limit; capped mode keeps a wider margin because a single rate-capped pass
// tracks the average less precisely.
const (
	DefaultSizeMBTwoPass = 9.8
	DefaultSizeMBCapped  = 9.0
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally layered with env/file values by [Load], and then mutated by the
// CLI layer before being passed (by pointer) to packages that need it.
type Config struct {
	// Paths (set from positional args).
	InputPath  string
	OutputPath string

	// Size budget.
	SizeMB         float64 // Target output size in MB. Default: 9.8 (twopass) / 9.0 (capped).
	SizeMBSet      bool    // True when the user set --size explicitly.
	OverheadFactor float64 // Usable payload fraction after container headers. Default: 0.98.

	// Encoder settings.
	Codec     Codec    // Default: libx265.
	Preset    string   // Default: "slow".
	AudioKbps int      // Default: 96.
	Mode      RateMode // Default: twopass.
	AutoScale bool     // Default: true. Cleared by --no-auto-scale.

	// Behavior flags.
	DryRun    bool
	CheckOnly bool // Run --check diagnostics and exit.

	// Display and logging.
	Verbose   bool
	ShowStats bool // Default: true. Live ffmpeg -stats passthrough.
	NoColor   bool
	LogLevel  string    // Default: "info".
	LogFormat LogFormat // Default: console.
}

// DefaultConfig returns a Config with all defaults matching the legacy script.
// Used as the base before [Load] and CLI flags apply overrides.
func DefaultConfig() Config {
	return Config{
		SizeMB:         DefaultSizeMBTwoPass,
		OverheadFactor: 0.98,
		Codec:          CodecX265,
		Preset:         "slow",
		AudioKbps:      96,
		Mode:           ModeTwoPass,
		AutoScale:      true,
		ShowStats:      true,
		LogLevel:       "info",
		LogFormat:      LogConsole,
	}
}

// Validate checks that enum fields hold valid values and numeric fields are in
// range. When not in CheckOnly mode, it also requires input and output paths.
// It also resolves the mode-dependent size default: capped mode drops to the
// conservative 9.0 MB default unless the user set --size explicitly.
func (c *Config) Validate() error {
	switch c.Codec {
	case CodecX265, CodecX264:
		// valid
	default:
		return errors.New("invalid codec (use 'libx265' or 'libx264')")
	}

	switch c.Mode {
	case ModeTwoPass, ModeCapped:
		// valid
	default:
		return errors.New("invalid mode (use 'twopass' or 'capped')")
	}

	switch c.LogFormat {
	case LogConsole, LogJSON:
		// valid
	default:
		return errors.New("invalid log format (use 'console' or 'json')")
	}

	if !validPresets[c.Preset] {
		return fmt.Errorf("invalid preset %q (use ultrafast..veryslow)", c.Preset)
	}

	if !c.SizeMBSet && c.Mode == ModeCapped {
		c.SizeMB = DefaultSizeMBCapped
	}

	if c.SizeMB <= 0 {
		return fmt.Errorf("target size must be positive (got %.2f MB)", c.SizeMB)
	}
	if c.OverheadFactor <= 0 || c.OverheadFactor > 1 {
		return fmt.Errorf("overhead factor must be in (0, 1] (got %.3f)", c.OverheadFactor)
	}
	if c.AudioKbps < 0 {
		return fmt.Errorf("audio bitrate must not be negative (got %d kbps)", c.AudioKbps)
	}

	if c.CheckOnly {
		return nil
	}
	if c.InputPath == "" || c.OutputPath == "" {
		return errors.New("need exactly input and output paths")
	}
	if c.InputPath == c.OutputPath {
		return errors.New("output path must differ from input path")
	}
	return nil
}
