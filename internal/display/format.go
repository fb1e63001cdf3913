// Package display provides human-readable formatting helpers for sizes and
// bitrates.
package display

import "fmt"

// BytesToMB converts a byte count to MB, where 1 MB = 2^20 bytes (the same
// definition the size budget uses).
func BytesToMB(bytes int64) float64 {
	return float64(bytes) / (1024 * 1024)
}

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatBitrateLabel returns a short label for bitrate in kbps
// (e.g. "574 kbps", "1.5 Mbps").
func FormatBitrateLabel(kbps int) string {
	if kbps < 1000 {
		return fmt.Sprintf("%d kbps", kbps)
	}
	return fmt.Sprintf("%.1f Mbps", float64(kbps)/1000)
}
