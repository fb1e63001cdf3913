package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// ExecResult holds the outcome of a single ffmpeg invocation.
type ExecResult struct {
	Stderr string
	Err    error
}

// ExecFunc runs one external command given its full argv. The pipeline holds
// an ExecFunc so tests can substitute a fake without spawning processes.
type ExecFunc func(ctx context.Context, args []string) ExecResult

// Execute runs args[0] with the remaining arguments. When tee is true, stderr
// is mirrored to os.Stderr in real time (for -stats progress); it is always
// captured for error reporting.
func Execute(ctx context.Context, args []string, tee bool) ExecResult {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if tee {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	return ExecResult{
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}

// ExitCode extracts the process exit status from an exec error so the CLI can
// propagate it unchanged. Errors that never reached the exec stage (binary
// missing, context cancelled) map to 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}
