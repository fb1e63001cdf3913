// Package check provides system diagnostics (--check mode) and pre-run
// dependency validation for ffmpeg, ffprobe, and the selected encoders.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/backmassage/sizecap/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool or encoder is
// missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
	ErrCodecUnusable   = errors.New("selected video codec failed a test encode")
)

// Logger is the minimal logging interface needed by RunCheck. Defined here
// (rather than importing the logging package) so that check stays
// dependency-light and testable with a mock logger.
type Logger interface {
	Infof(string, ...any)
	Warnf(string, ...any)
	Errorf(string, ...any)
}

// RunCheck runs the interactive --check flow: prints availability of ffmpeg,
// ffprobe, both supported video codecs, and the AAC audio encoder. This is
// informational only; it does not stop on failure.
func RunCheck(log Logger) {
	log.Infof("=== system check ===")

	checkTool(log, "ffmpeg")
	checkTool(log, "ffprobe")
	checkCodec(log, config.CodecX265)
	checkCodec(log, config.CodecX264)
	checkAAC(log)
}

// checkTool verifies the binary is on PATH and logs its version line.
func checkTool(log Logger, name string) {
	if _, err := exec.LookPath(name); err != nil {
		log.Errorf("%s not found", name)
		return
	}
	out, err := exec.Command(name, "-version").Output()
	if err != nil {
		log.Warnf("%s found but -version failed: %v", name, err)
		return
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Infof("%s: %s", name, firstLine)
}

// checkCodec runs a minimal encode to verify the video codec works.
func checkCodec(log Logger, codec config.Codec) {
	if runSilent("ffmpeg", codecTestArgs(codec)...) {
		log.Infof("%s works", codec)
	} else {
		log.Errorf("%s test encode failed", codec)
	}
}

// checkAAC runs a minimal AAC encode to verify the audio encoder works.
func checkAAC(log Logger) {
	if runSilent("ffmpeg",
		"-hide_banner", "-nostdin",
		"-f", "lavfi", "-i", "sine=frequency=1000:duration=0.1",
		"-c:a", "aac", "-f", "null", "-",
	) {
		log.Infof("aac encoder works")
	} else {
		log.Errorf("aac encoder test failed")
	}
}

// CheckDeps is the pre-run validation: ffmpeg and ffprobe must be on PATH and
// the configured codec must pass a short test encode. Returns a sentinel
// error on failure so the CLI can fail fast before probing the input.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return ErrFfprobeNotFound
	}
	if !runSilent("ffmpeg", codecTestArgs(cfg.Codec)...) {
		return ErrCodecUnusable
	}
	return nil
}

// codecTestArgs returns the arguments for a minimal test encode with the
// given codec. Shared by checkCodec and CheckDeps.
func codecTestArgs(codec config.Codec) []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
		"-c:v", string(codec),
		"-f", "null", "-",
	}
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
