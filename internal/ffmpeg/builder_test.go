package ffmpeg

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/sizecap/internal/config"
	"github.com/backmassage/sizecap/internal/planner"
)

func testCfg() *config.Config {
	cfg := config.DefaultConfig()
	cfg.InputPath = "in.mp4"
	cfg.OutputPath = "out.mp4"
	cfg.ShowStats = false
	return &cfg
}

func testPlan() *planner.EncodePlan {
	return &planner.EncodePlan{
		VideoKbps: 575,
		AudioKbps: 96,
		Mode:      config.ModeTwoPass,
		Passes:    2,
	}
}

// argsAfter returns the value following the first occurrence of flag, or "".
func argsAfter(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func TestBuild_AnalysisPass(t *testing.T) {
	args := Build(testCfg(), testPlan(), PassAnalysis, "/tmp/x/ffmpeg2pass")

	assert.Equal(t, "ffmpeg", args[0])
	assert.Equal(t, "in.mp4", argsAfter(args, "-i"))
	assert.Equal(t, "libx265", argsAfter(args, "-c:v"))
	assert.Equal(t, "575k", argsAfter(args, "-b:v"))
	assert.Equal(t, "slow", argsAfter(args, "-preset"))
	assert.Equal(t, "1", argsAfter(args, "-pass"))
	assert.Equal(t, "/tmp/x/ffmpeg2pass", argsAfter(args, "-passlogfile"))
	assert.Contains(t, args, "-an", "analysis pass carries no audio")
	assert.Equal(t, "null", argsAfter(args, "-f"))
	assert.Equal(t, os.DevNull, args[len(args)-1], "analysis output is discarded")
	assert.NotContains(t, args, "-c:a")
	assert.NotContains(t, args, "-movflags")
}

func TestBuild_FinalPass(t *testing.T) {
	args := Build(testCfg(), testPlan(), PassFinal, "/tmp/x/ffmpeg2pass")

	assert.Equal(t, "2", argsAfter(args, "-pass"))
	assert.Equal(t, "aac", argsAfter(args, "-c:a"))
	assert.Equal(t, "96k", argsAfter(args, "-b:a"))
	assert.Equal(t, "+faststart", argsAfter(args, "-movflags"))
	assert.Equal(t, "out.mp4", args[len(args)-1])
	assert.NotContains(t, args, "-an")
}

func TestBuild_ScaleFilter(t *testing.T) {
	plan := testPlan()
	plan.Scale = &planner.Resolution{Width: 852, Height: 480}

	args := Build(testCfg(), plan, PassFinal, "/tmp/x/ffmpeg2pass")
	assert.Equal(t, "scale=852:480", argsAfter(args, "-vf"))

	plan.Scale = nil
	args = Build(testCfg(), plan, PassFinal, "/tmp/x/ffmpeg2pass")
	assert.NotContains(t, args, "-vf")
}

func TestBuild_CappedPass(t *testing.T) {
	cfg := testCfg()
	cfg.Mode = config.ModeCapped
	plan := testPlan()
	plan.Mode = config.ModeCapped
	plan.Passes = 1
	plan.MaxrateKbps = 575
	plan.BufsizeKbps = 1150

	args := Build(cfg, plan, PassCapped, "")

	assert.Equal(t, "575k", argsAfter(args, "-maxrate"))
	assert.Equal(t, "1150k", argsAfter(args, "-bufsize"))
	assert.NotContains(t, args, "-pass")
	assert.NotContains(t, args, "-passlogfile")
	assert.Equal(t, "aac", argsAfter(args, "-c:a"))
	assert.Equal(t, "out.mp4", args[len(args)-1])
}

func TestBuild_VerboseAndStats(t *testing.T) {
	cfg := testCfg()
	args := Build(cfg, testPlan(), PassFinal, "log")
	assert.Equal(t, "error", argsAfter(args, "-loglevel"))
	assert.NotContains(t, args, "-stats")

	cfg.Verbose = true
	cfg.ShowStats = true
	args = Build(cfg, testPlan(), PassFinal, "log")
	assert.Equal(t, "info", argsAfter(args, "-loglevel"))
	assert.Contains(t, args, "-stats")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(exec.ErrNotFound))

	// A real nonzero exit so the mapping is exercised end to end.
	err := exec.Command("sh", "-c", "exit 42").Run()
	require.Error(t, err)
	assert.Equal(t, 42, ExitCode(err))
}

func TestBuild_NoShellMetacharacterJoining(t *testing.T) {
	// The argv is passed to exec directly; a space in the input path must stay
	// one argument.
	cfg := testCfg()
	cfg.InputPath = "my clip.mp4"
	args := Build(cfg, testPlan(), PassFinal, "log")
	assert.Equal(t, "my clip.mp4", argsAfter(args, "-i"))
	assert.False(t, strings.Contains(args[0], " "))
}
