package ffmpeg

import (
	"fmt"
	"os"

	"github.com/backmassage/sizecap/internal/config"
	"github.com/backmassage/sizecap/internal/planner"
)

// Pass identifies which encoder invocation is being built.
type Pass int

const (
	// PassAnalysis is the first of two passes: analysis only, no audio,
	// output discarded.
	PassAnalysis Pass = iota
	// PassFinal is the second pass: full encode with audio.
	PassFinal
	// PassCapped is the single rate-capped pass of capped mode.
	PassCapped
)

// Build constructs the complete ffmpeg argument slice for one pass. passLog is
// the two-pass log file prefix inside the run's temp dir; it is ignored for
// PassCapped.
func Build(cfg *config.Config, plan *planner.EncodePlan, pass Pass, passLog string) []string {
	args := make([]string, 0, 32)

	// --- Preamble ---
	args = append(args, "ffmpeg", "-hide_banner", "-nostdin", "-y")

	// Loglevel: info when verbose, otherwise error.
	if cfg.Verbose {
		args = append(args, "-loglevel", "info")
	} else {
		args = append(args, "-loglevel", "error")
	}

	// Live progress for the operator.
	if cfg.ShowStats {
		args = append(args, "-stats", "-stats_period", "1")
	}

	// --- Input ---
	args = append(args, "-i", cfg.InputPath)

	// --- Video codec and bitrate ---
	args = append(args,
		"-c:v", string(cfg.Codec),
		"-b:v", fmt.Sprintf("%dk", plan.VideoKbps),
		"-preset", cfg.Preset,
	)

	// --- Scale filter (auto-downscale decision) ---
	if plan.Scale != nil {
		args = append(args, "-vf", fmt.Sprintf("scale=%d:%d", plan.Scale.Width, plan.Scale.Height))
	}

	switch pass {
	case PassAnalysis:
		args = append(args,
			"-pass", "1",
			"-passlogfile", passLog,
			"-an",
			"-f", "null", os.DevNull,
		)

	case PassFinal:
		args = append(args,
			"-pass", "2",
			"-passlogfile", passLog,
		)
		args = appendAudioAndOutput(args, cfg, plan)

	case PassCapped:
		args = append(args,
			"-maxrate", fmt.Sprintf("%dk", plan.MaxrateKbps),
			"-bufsize", fmt.Sprintf("%dk", plan.BufsizeKbps),
		)
		args = appendAudioAndOutput(args, cfg, plan)
	}

	return args
}

// appendAudioAndOutput adds the audio codec, the faststart container flag for
// streaming-friendly metadata placement, and the output path.
func appendAudioAndOutput(args []string, cfg *config.Config, plan *planner.EncodePlan) []string {
	return append(args,
		"-c:a", "aac",
		"-b:a", fmt.Sprintf("%dk", plan.AudioKbps),
		"-movflags", "+faststart",
		cfg.OutputPath,
	)
}
