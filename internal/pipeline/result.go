package pipeline

import (
	"fmt"

	"github.com/backmassage/sizecap/internal/planner"
)

// Stage names the step of the run an external failure occurred in. The run is
// strictly linear: probe → analysis → final.
type Stage string

const (
	StageProbe    Stage = "probe"
	StageAnalysis Stage = "analysis"
	StageFinal    Stage = "final"
)

// StageError is an external-process failure. ExitCode carries the
// collaborator's own exit status so the CLI can propagate it unchanged.
type StageError struct {
	Stage    Stage
	ExitCode int
	Stderr   string
	Err      error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed (exit %d): %v", e.Stage, e.ExitCode, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Result describes a completed run.
type Result struct {
	Plan        *planner.EncodePlan
	OutputPath  string
	OutputBytes int64
	DryRun      bool
}

// OverTarget reports whether the final file exceeded the requested budget.
// This is informational: a floor-limited encode is expected to overshoot.
func (r *Result) OverTarget() bool {
	if r.DryRun {
		return false
	}
	targetBytes := int64(r.Plan.TargetMB * 1024 * 1024)
	return r.OutputBytes > targetBytes
}
