package planner

import (
	"fmt"

	"github.com/backmassage/sizecap/internal/config"
)

// SizeBudget is the input to the bit-budget computation. OverheadFactor is the
// usable payload fraction left after container headers and metadata; it is an
// explicit field rather than a constant so callers can override it.
type SizeBudget struct {
	TargetMB       float64
	OverheadFactor float64
	AudioKbps      int
}

// BudgetFromConfig builds a SizeBudget from runtime config.
func BudgetFromConfig(cfg *config.Config) SizeBudget {
	return SizeBudget{
		TargetMB:       cfg.SizeMB,
		OverheadFactor: cfg.OverheadFactor,
		AudioKbps:      cfg.AudioKbps,
	}
}

// EffectiveMB returns the payload budget after the container overhead reserve.
func (b SizeBudget) EffectiveMB() float64 {
	return b.TargetMB * b.OverheadFactor
}

// Resolution is a target frame size. Both dimensions are even.
type Resolution struct {
	Width  int
	Height int
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// EncodePlan is the immutable result of planning: everything the encode
// driver needs to build ffmpeg invocations.
type EncodePlan struct {
	VideoKbps int
	AudioKbps int

	// Scale is nil when the source resolution is kept.
	Scale *Resolution

	// Rate control. Passes is 2 in two-pass mode, 1 in capped mode. The
	// maxrate/bufsize fields are only set in capped mode.
	Mode        config.RateMode
	Passes      int
	MaxrateKbps int
	BufsizeKbps int

	// Display/reporting fields.
	TargetMB    float64
	EffectiveMB float64
	FloorHit    bool // The 100 kbps video floor was applied; output may exceed TargetMB.
}

// ResolutionLabel describes the plan's output resolution for status lines,
// given the source dimensions.
func (p *EncodePlan) ResolutionLabel(srcWidth, srcHeight int) string {
	if p.Scale != nil {
		return p.Scale.String()
	}
	return fmt.Sprintf("%dx%d (original)", srcWidth, srcHeight)
}
