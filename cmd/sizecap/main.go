// Command sizecap re-encodes a video so the output fits under a target size
// budget. It computes the bitrate allocation, then drives ffmpeg through a
// one- or two-pass encode with optional auto-downscaling.
package main

import (
	"os"

	"github.com/backmassage/sizecap/internal/cli"
)

// version is set at build time via -ldflags.
var version = "1.0.0-dev"

func main() {
	cli.SetVersion(version)
	os.Exit(cli.Execute())
}
