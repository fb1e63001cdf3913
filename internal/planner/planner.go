package planner

import (
	"github.com/backmassage/sizecap/internal/config"
	"github.com/backmassage/sizecap/internal/probe"
)

// BuildPlan produces a complete EncodePlan from config and probe data.
//
// Flow:
//  1. Compute the video bitrate from the size budget (floor 100 kbps)
//  2. Decide downscaling (two-pass mode with auto-scale only)
//  3. Set the pass strategy: two-pass averaging, or a single capped pass
//     with maxrate/bufsize around the computed bitrate
func BuildPlan(cfg *config.Config, info *probe.MediaInfo) (*EncodePlan, error) {
	budget := BudgetFromConfig(cfg)

	videoKbps, err := budget.VideoKbps(info.DurationSec)
	if err != nil {
		return nil, err
	}

	plan := &EncodePlan{
		VideoKbps:   videoKbps,
		AudioKbps:   budget.AudioKbps,
		Mode:        cfg.Mode,
		TargetMB:    budget.TargetMB,
		EffectiveMB: budget.EffectiveMB(),
		FloorHit:    videoKbps <= bitrateFloorBps/1000,
	}

	switch cfg.Mode {
	case config.ModeCapped:
		plan.Passes = 1
		plan.MaxrateKbps = videoKbps
		plan.BufsizeKbps = videoKbps * 2
	default:
		plan.Passes = 2
		if cfg.AutoScale {
			if res, ok := TargetResolution(info.Width, info.Height, videoKbps); ok {
				plan.Scale = &res
			}
		}
	}

	return plan, nil
}
