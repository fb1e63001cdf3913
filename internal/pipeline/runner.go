// Package pipeline orchestrates the sequential encode run:
// probe → plan → analysis pass → final pass → size report.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/sizecap/internal/config"
	"github.com/backmassage/sizecap/internal/display"
	"github.com/backmassage/sizecap/internal/ffmpeg"
	"github.com/backmassage/sizecap/internal/logging"
	"github.com/backmassage/sizecap/internal/planner"
	"github.com/backmassage/sizecap/internal/probe"
)

// Inputs smaller than this are almost certainly corrupt or truncated.
const minInputSize = 1000

// ProbeFunc matches probe.Probe; injectable for tests.
type ProbeFunc func(ctx context.Context, path string) (*probe.MediaInfo, error)

// Runner drives one encode run. The collaborator functions default to the
// real ffprobe/ffmpeg invocations; tests replace them.
type Runner struct {
	Cfg   *config.Config
	Log   *logging.Logger
	Probe ProbeFunc
	Exec  ffmpeg.ExecFunc

	// TempDir overrides the passlog directory parent; empty means the
	// system default.
	TempDir string
}

// New returns a Runner wired to the real external collaborators.
func New(cfg *config.Config, log *logging.Logger) *Runner {
	return &Runner{
		Cfg:   cfg,
		Log:   log,
		Probe: probe.Probe,
		Exec: func(ctx context.Context, args []string) ffmpeg.ExecResult {
			return ffmpeg.Execute(ctx, args, cfg.ShowStats || cfg.Verbose)
		},
	}
}

// Run executes the full pipeline and returns the run result. Failures in
// external processes come back as *StageError carrying the collaborator's
// exit code; planning failures (invalid metadata) come back as plain errors.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	cfg := r.Cfg

	// --- Validate input ---
	fi, err := os.Stat(cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("input not found: %s", cfg.InputPath)
	}
	if fi.Size() < minInputSize {
		return nil, fmt.Errorf("input too small (possibly corrupt): %s", cfg.InputPath)
	}

	// --- Probe ---
	info, err := r.Probe(ctx, cfg.InputPath)
	if err != nil {
		return nil, &StageError{Stage: StageProbe, ExitCode: ffmpeg.ExitCode(err), Err: err}
	}
	r.Log.Debugf("probed %s: %.2fs %s", filepath.Base(cfg.InputPath), info.DurationSec, info.Resolution())

	// --- Plan ---
	plan, err := planner.BuildPlan(cfg, info)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", cfg.InputPath, err)
	}
	r.logPlan(info, plan)

	if plan.FloorHit {
		r.Log.Warnf("budget cannot sustain the %d kbps video floor; output will likely exceed %.1f MB",
			plan.VideoKbps, plan.TargetMB)
	}

	// --- Dry run: print the argv and stop ---
	if cfg.DryRun {
		r.logDryRun(plan)
		return &Result{Plan: plan, DryRun: true}, nil
	}

	// --- Encode pass(es) ---
	if err := r.encode(ctx, plan); err != nil {
		return nil, err
	}

	return r.report(plan)
}

// encode runs the pass sequence for the plan: a single capped pass, or the
// analysis pass followed by the final pass with the shared passlog held in a
// temp dir that is removed when the run ends, success or not.
func (r *Runner) encode(ctx context.Context, plan *planner.EncodePlan) error {
	if plan.Passes == 1 {
		r.Log.Infof("[pass 1/1] encoding with rate cap...")
		args := ffmpeg.Build(r.Cfg, plan, ffmpeg.PassCapped, "")
		return r.runPass(ctx, StageFinal, args)
	}

	tmpDir, err := os.MkdirTemp(r.TempDir, "sizecap-2pass-")
	if err != nil {
		return fmt.Errorf("create passlog dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)
	passLog := filepath.Join(tmpDir, "ffmpeg2pass")

	r.Log.Infof("[pass 1/2] analysing video...")
	args := ffmpeg.Build(r.Cfg, plan, ffmpeg.PassAnalysis, passLog)
	if err := r.runPass(ctx, StageAnalysis, args); err != nil {
		return err
	}

	r.Log.Infof("[pass 2/2] encoding final output...")
	args = ffmpeg.Build(r.Cfg, plan, ffmpeg.PassFinal, passLog)
	return r.runPass(ctx, StageFinal, args)
}

// runPass executes one ffmpeg invocation and wraps a failure into a
// StageError with the encoder's exit code. No retries: the first failure
// terminates the run.
func (r *Runner) runPass(ctx context.Context, stage Stage, args []string) error {
	res := r.Exec(ctx, args)
	if res.Err == nil {
		return nil
	}
	logStderrTail(r.Log.WithStage(string(stage)), res.Stderr)
	return &StageError{
		Stage:    stage,
		ExitCode: ffmpeg.ExitCode(res.Err),
		Stderr:   res.Stderr,
		Err:      res.Err,
	}
}

// report stats the output and compares it against the target budget.
func (r *Runner) report(plan *planner.EncodePlan) (*Result, error) {
	fi, err := os.Stat(r.Cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("stat output: %w", err)
	}

	result := &Result{
		Plan:        plan,
		OutputPath:  r.Cfg.OutputPath,
		OutputBytes: fi.Size(),
	}

	outMB := display.BytesToMB(fi.Size())
	if result.OverTarget() {
		r.Log.Warnf("output size: %.2f MB (over %.1f MB target) -> %s", outMB, plan.TargetMB, r.Cfg.OutputPath)
	} else {
		r.Log.Infof("output size: %.2f MB (under %.1f MB target) -> %s", outMB, plan.TargetMB, r.Cfg.OutputPath)
	}
	return result, nil
}

// logPlan prints the computed parameters the way the legacy script did,
// as structured fields.
func (r *Runner) logPlan(info *probe.MediaInfo, plan *planner.EncodePlan) {
	r.Log.Z().Info().
		Float64("duration_sec", info.DurationSec).
		Float64("target_mb", plan.TargetMB).
		Float64("effective_mb", plan.EffectiveMB).
		Int("video_kbps", plan.VideoKbps).
		Int("audio_kbps", plan.AudioKbps).
		Str("resolution", plan.ResolutionLabel(info.Width, info.Height)).
		Str("codec", string(r.Cfg.Codec)).
		Str("preset", r.Cfg.Preset).
		Int("passes", plan.Passes).
		Msg("encode plan")
}

func (r *Runner) logDryRun(plan *planner.EncodePlan) {
	if plan.Passes == 1 {
		r.Log.Infof("[dry-run] %s", strings.Join(ffmpeg.Build(r.Cfg, plan, ffmpeg.PassCapped, ""), " "))
		return
	}
	passLog := filepath.Join(os.TempDir(), "ffmpeg2pass")
	r.Log.Infof("[dry-run] %s", strings.Join(ffmpeg.Build(r.Cfg, plan, ffmpeg.PassAnalysis, passLog), " "))
	r.Log.Infof("[dry-run] %s", strings.Join(ffmpeg.Build(r.Cfg, plan, ffmpeg.PassFinal, passLog), " "))
}

// logStderrTail surfaces the last lines of encoder output after a failure.
func logStderrTail(log *logging.Logger, stderr string) {
	if stderr == "" {
		return
	}
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	start := 0
	if len(lines) > 20 {
		start = len(lines) - 20
	}
	log.Errorf("last ffmpeg output:")
	for _, l := range lines[start:] {
		log.Errorf("  %s", l)
	}
}
