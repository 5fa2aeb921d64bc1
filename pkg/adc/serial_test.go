package adc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    uint16
		wantErr bool
	}{
		{name: "plain value", line: "511\n", want: 511},
		{name: "zero", line: "0\n", want: 0},
		{name: "max native sample", line: "1023\n", want: 1023},
		{name: "max 16-bit value", line: "65535\n", want: 65535},
		{name: "carriage return", line: "42\r\n", want: 42},
		{name: "surrounding whitespace", line: " 42 \n", want: 42},
		{name: "empty line", line: "\n", wantErr: true},
		{name: "non-numeric", line: "abc\n", wantErr: true},
		{name: "negative", line: "-1\n", wantErr: true},
		{name: "out of 16-bit range", line: "65536\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseResponse(tt.line)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewSerial_DefaultBaudRate(t *testing.T) {
	d := NewSerial("COM3", 0)
	assert.Equal(t, DefaultBaudRate, d.baudRate)

	d = NewSerial("COM3", 9600)
	assert.Equal(t, 9600, d.baudRate)
}

func TestSerial_NotConnected(t *testing.T) {
	d := NewSerial("COM3", 0)

	assert.False(t, d.IsConnected())
	assert.NoError(t, d.Close(), "closing an unconnected converter is a no-op")

	// Transport failures surface as zero readings, never panics.
	assert.Equal(t, uint16(0), d.Sample(0))
	assert.Equal(t, uint8(0), d.Control())
	assert.NotPanics(t, func() { d.SetControl(0x87) })
}
