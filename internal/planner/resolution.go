package planner

// Downscale thresholds: below minKbps the available bitrate is judged
// insufficient for frames taller than tierHeight, and the frame is scaled to
// targetHeight instead. Evaluated in order; first match wins.
const (
	minKbpsFor1080p = 1500
	minKbpsFor720p  = 600
)

// TargetResolution decides whether downscaling is worthwhile for the given
// source dimensions and available video bitrate. It returns the new even
// dimensions and true, or a zero Resolution and false when the source should
// be kept as-is.
//
// The "current tier height" is the height-equivalent of the frame: for
// portrait sources (width < height) the smaller dimension counts, so a
// 1080x1920 phone clip is treated as 1080p, not 1920p.
func TargetResolution(width, height, videoKbps int) (Resolution, bool) {
	currentHeight := height
	if width < height {
		currentHeight = width
	}

	var targetHeight int
	switch {
	case videoKbps < minKbpsFor720p && currentHeight > 480:
		targetHeight = 480
	case videoKbps < minKbpsFor1080p && currentHeight > 720:
		targetHeight = 720
	default:
		return Resolution{}, false
	}

	scale := float64(targetHeight) / float64(height)
	newWidth := evenClamped(int(float64(width) * scale))
	newHeight := evenClamped(int(float64(height) * scale))

	return Resolution{Width: newWidth, Height: newHeight}, true
}

// evenClamped rounds down to the nearest even integer (codec requirement) and
// clamps to a 2-pixel minimum so pathologically small sources never produce a
// zero dimension.
func evenClamped(v int) int {
	v &^= 1
	if v < 2 {
		return 2
	}
	return v
}
