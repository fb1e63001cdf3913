package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytesToMB(t *testing.T) {
	assert.Equal(t, 1.0, BytesToMB(1024*1024))
	assert.InDelta(t, 9.8, BytesToMB(10276045), 0.01)
	assert.Equal(t, 0.0, BytesToMB(0))
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{999, "999 B"},
		{1024, "1.0 KiB"},
		{10276045, "9.8 MiB"},
		{3 * 1024 * 1024 * 1024, "3.0 GiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.in))
	}
}

func TestFormatBitrateLabel(t *testing.T) {
	assert.Equal(t, "575 kbps", FormatBitrateLabel(575))
	assert.Equal(t, "1.5 Mbps", FormatBitrateLabel(1500))
}
