// Package cli defines the cobra command surface: flags, positional args,
// config layering, and the run entrypoint.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/backmassage/sizecap/internal/check"
	"github.com/backmassage/sizecap/internal/config"
	"github.com/backmassage/sizecap/internal/display"
	"github.com/backmassage/sizecap/internal/logging"
	"github.com/backmassage/sizecap/internal/pipeline"
)

// version is overridden at build time via -ldflags "-X ...cli.version=...".
var version = "1.0.0-dev"

// SetVersion sets the version string shown by --version (called from main).
func SetVersion(v string) { version = v }

// Execute parses arguments, runs the tool, and returns the process exit code.
// External-process failures propagate their own exit status; everything else
// exits 1 on error.
func Execute() int {
	cfg := config.DefaultConfig()
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "sizecap [flags] <input> <output>",
		Short: "Re-encode a video to fit under a target size with maximum quality",
		Long: `sizecap computes the video bitrate that fills a file-size budget
(after reserving container overhead and the audio track), optionally
downscales low-bitrate encodes, and drives ffmpeg through a two-pass
encode toward that budget.

Requires ffmpeg and ffprobe on PATH.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if cfg.CheckOnly {
				return nil
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Env/file layer first, then flags the user actually set win.
			if err := config.Load(&cfg, configPath); err != nil {
				return err
			}
			applyFlagOverrides(cmd, &cfg)

			if !cfg.CheckOnly {
				cfg.InputPath = args[0]
				cfg.OutputPath = args[1]
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := logging.New(&cfg)

			if cfg.LogFormat == config.LogConsole {
				display.PrintBanner(os.Stderr, version)
			}

			if cfg.CheckOnly {
				check.RunCheck(log)
				return nil
			}

			if err := check.CheckDeps(&cfg); err != nil {
				return err
			}

			_, err := pipeline.New(&cfg, log).Run(cmd.Context())
			return err
		},
	}

	defineFlags(rootCmd, &cfg, &configPath)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "sizecap: %v\n", err)
		var stageErr *pipeline.StageError
		if errors.As(err, &stageErr) {
			return stageErr.ExitCode
		}
		return 1
	}
	return 0
}

func defineFlags(cmd *cobra.Command, cfg *config.Config, configPath *string) {
	f := cmd.Flags()

	f.Float64Var(&cfg.SizeMB, "size", cfg.SizeMB,
		"target size in MB (default 9.8, safe for a 10 MB limit; 9.0 in capped mode)")
	f.IntVar(&cfg.AudioKbps, "audio-kbps", cfg.AudioKbps, "audio bitrate in kbps")
	f.StringVar((*string)(&cfg.Codec), "codec", string(cfg.Codec), "video codec: libx265 | libx264")
	f.StringVar(&cfg.Preset, "preset", cfg.Preset, "encoder preset, ultrafast..veryslow (slower = better quality)")
	f.StringVar((*string)(&cfg.Mode), "mode", string(cfg.Mode),
		"rate control: twopass (two-pass average) | capped (single pass with maxrate cap)")

	var noAutoScale bool
	f.BoolVar(&noAutoScale, "no-auto-scale", false, "disable automatic downscaling for low-bitrate encodes")

	f.BoolVar(&cfg.DryRun, "dry-run", false, "print the plan and ffmpeg commands without encoding")
	f.BoolVar(&cfg.CheckOnly, "check", false, "run system diagnostics and exit")
	f.BoolVarP(&cfg.Verbose, "verbose", "v", false, "verbose output (full ffmpeg loglevel, debug logs)")
	f.BoolVar(&cfg.NoColor, "no-color", false, "disable colored logs")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug | info | warn | error")
	f.StringVar((*string)(&cfg.LogFormat), "log-format", string(cfg.LogFormat), "log format: console | json")
	f.StringVar(configPath, "config", "", "optional YAML config file")
}

// applyFlagOverrides re-asserts values for flags the user passed explicitly,
// since the viper layer in config.Load may have overwritten them from env or
// file. Explicit flags always win.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("size") {
		if v, err := f.GetFloat64("size"); err == nil {
			cfg.SizeMB = v
			cfg.SizeMBSet = true
		}
	}
	if f.Changed("audio-kbps") {
		if v, err := f.GetInt("audio-kbps"); err == nil {
			cfg.AudioKbps = v
		}
	}
	if f.Changed("codec") {
		if v, err := f.GetString("codec"); err == nil {
			cfg.Codec = config.Codec(v)
		}
	}
	if f.Changed("preset") {
		if v, err := f.GetString("preset"); err == nil {
			cfg.Preset = v
		}
	}
	if f.Changed("mode") {
		if v, err := f.GetString("mode"); err == nil {
			cfg.Mode = config.RateMode(v)
		}
	}
	if f.Changed("no-auto-scale") {
		cfg.AutoScale = false
	}
	if f.Changed("log-level") {
		if v, err := f.GetString("log-level"); err == nil {
			cfg.LogLevel = v
		}
	}
	if f.Changed("log-format") {
		if v, err := f.GetString("log-format"); err == nil {
			cfg.LogFormat = config.LogFormat(v)
		}
	}
}
