package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
	"streams": [{"width": 1920, "height": 1080}],
	"format": {"duration": "120.500000"}
}`

func TestParseJSON_Valid(t *testing.T) {
	info, err := ParseJSON([]byte(sampleJSON))
	require.NoError(t, err)

	assert.InDelta(t, 120.5, info.DurationSec, 1e-9)
	assert.Equal(t, 1920, info.Width)
	assert.Equal(t, 1080, info.Height)
	assert.Equal(t, "1920x1080", info.Resolution())
}

func TestParseJSON_Malformed(t *testing.T) {
	_, err := ParseJSON([]byte("{not json"))
	assert.ErrorContains(t, err, "parse ffprobe JSON")
}

func TestParseJSON_NoVideoStream(t *testing.T) {
	_, err := ParseJSON([]byte(`{"streams": [], "format": {"duration": "10"}}`))
	assert.ErrorIs(t, err, ErrNoVideoStream)
}

func TestParseJSON_InvalidMetadata(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"zero duration", `{"streams":[{"width":1920,"height":1080}],"format":{"duration":"0"}}`},
		{"missing duration", `{"streams":[{"width":1920,"height":1080}],"format":{}}`},
		{"garbage duration", `{"streams":[{"width":1920,"height":1080}],"format":{"duration":"N/A"}}`},
		{"zero width", `{"streams":[{"width":0,"height":1080}],"format":{"duration":"10"}}`},
		{"zero height", `{"streams":[{"width":1920,"height":0}],"format":{"duration":"10"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestMediaInfoValidate(t *testing.T) {
	good := MediaInfo{DurationSec: 1, Width: 2, Height: 2}
	assert.NoError(t, good.Validate())

	bad := MediaInfo{DurationSec: -3, Width: 1920, Height: 1080}
	assert.ErrorContains(t, bad.Validate(), "invalid duration")
}
