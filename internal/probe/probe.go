// Package probe provides ffprobe-based media inspection. A single JSON call
// per file returns the duration and frame dimensions the planner needs.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Probe runs a single ffprobe JSON call against path and returns the parsed,
// validated result. Only the first video stream is queried.
func Probe(ctx context.Context, path string) (*MediaInfo, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "format=duration:stream=width,height",
		"-of", "json",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}

	return ParseJSON(out)
}

// ParseJSON converts raw ffprobe JSON output into a validated MediaInfo.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*MediaInfo, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	info, err := buildInfo(&raw)
	if err != nil {
		return nil, err
	}
	if err := info.Validate(); err != nil {
		return nil, err
	}
	return info, nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

type ffprobeStream struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// --- Conversion from wire types to the domain type ---

func buildInfo(raw *ffprobeOutput) (*MediaInfo, error) {
	if len(raw.Streams) == 0 {
		return nil, ErrNoVideoStream
	}
	s := raw.Streams[0]
	return &MediaInfo{
		DurationSec: parseFloat(raw.Format.Duration),
		Width:       s.Width,
		Height:      s.Height,
	}, nil
}

// parseFloat handles ffprobe's habit of returning numbers as strings.
func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
