package probe

import (
	"errors"
	"fmt"
)

// Validation errors for malformed or missing source metadata.
var (
	ErrNoVideoStream = errors.New("no video stream found")
)

// MediaInfo holds the source metadata the planner needs. Obtained once per
// input file and immutable for the run.
type MediaInfo struct {
	DurationSec float64
	Width       int
	Height      int
}

// Validate checks the invariants the planner depends on: positive duration
// and positive frame dimensions.
func (m *MediaInfo) Validate() error {
	if m.DurationSec <= 0 {
		return fmt.Errorf("invalid duration %.3fs (must be > 0)", m.DurationSec)
	}
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d (must be > 0)", m.Width, m.Height)
	}
	return nil
}

// Resolution returns the source dimensions as a "WxH" label.
func (m *MediaInfo) Resolution() string {
	return fmt.Sprintf("%dx%d", m.Width, m.Height)
}
