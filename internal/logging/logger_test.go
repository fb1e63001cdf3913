package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/sizecap/internal/config"
)

func TestJSONFormat(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LogFormat = config.LogJSON

	var buf bytes.Buffer
	log := NewWithWriter(&cfg, &buf)
	log.Infof("output size: %.2f MB", 9.43)

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "info", event["level"])
	assert.Equal(t, "output size: 9.43 MB", event["message"])
}

func TestVerboseEnablesDebug(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LogFormat = config.LogJSON

	var buf bytes.Buffer
	log := NewWithWriter(&cfg, &buf)
	log.Debugf("hidden")
	assert.Empty(t, buf.String(), "debug suppressed at info level")

	cfg.Verbose = true
	log = NewWithWriter(&cfg, &buf)
	log.Debugf("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestWithStage(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LogFormat = config.LogJSON

	var buf bytes.Buffer
	log := NewWithWriter(&cfg, &buf).WithStage("analysis")
	log.Warnf("pass failed")

	assert.True(t, strings.Contains(buf.String(), `"stage":"analysis"`))
}

func TestConsoleFormatNoColor(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.NoColor = true

	var buf bytes.Buffer
	log := NewWithWriter(&cfg, &buf)
	log.Infof("plain text")

	out := buf.String()
	assert.Contains(t, out, "plain text")
	assert.NotContains(t, out, "\x1b[", "no ANSI escapes when colors are off")
}
