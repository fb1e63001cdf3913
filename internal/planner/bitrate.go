package planner

import "errors"

// ErrInvalidDuration is returned when the source duration is not positive.
var ErrInvalidDuration = errors.New("duration must be > 0")

const (
	// bitrateFloorBps is the minimum video bitrate. Below this the output is
	// unusable, so the floor is applied even when it blows the size budget.
	bitrateFloorBps = 100_000

	bitsPerMB = 1024 * 1024 * 8
)

// VideoKbps computes the video bitrate (kbps) that fills the size budget over
// durationSec after reserving container overhead and the audio track.
//
// The result is floored at 100 kbps unconditionally: when the budget cannot
// sustain even that, the plan still uses 100 kbps and the real output may
// exceed the target. Callers detect that case via FloorHit on the plan.
func (b SizeBudget) VideoKbps(durationSec float64) (int, error) {
	if durationSec <= 0 {
		return 0, ErrInvalidDuration
	}

	totalBits := b.EffectiveMB() * bitsPerMB
	audioBps := float64(b.AudioKbps) * 1000

	videoBps := totalBits/durationSec - audioBps
	if videoBps < bitrateFloorBps {
		videoBps = bitrateFloorBps
	}
	return int(videoBps / 1000), nil
}
