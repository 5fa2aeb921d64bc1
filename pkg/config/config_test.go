package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NotNil(t, cfg)
	assert.Equal(t, "COM3", cfg.Serial.Port)
	assert.Equal(t, 115200, cfg.Serial.BaudRate)
	assert.Equal(t, uint8(7), cfg.Session.Prescaler)
	assert.Equal(t, uint8(0), cfg.Read.Channel)
	assert.Equal(t, uint8(10), cfg.Read.OutputBits)
	assert.Equal(t, uint8(0), cfg.Read.AveragePow)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileNotExists(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "COM3", cfg.Serial.Port)
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	content := `
serial:
  port: /dev/ttyACM0
session:
  prescaler: 5
read:
  channel: 2
  output_bits: 12
  average_pow: 3
`
	_, err = tmpfile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyACM0", cfg.Serial.Port)
	assert.Equal(t, 115200, cfg.Serial.BaudRate, "missing baud rate falls back to default")
	assert.Equal(t, uint8(5), cfg.Session.Prescaler)
	assert.Equal(t, uint8(2), cfg.Read.Channel)
	assert.Equal(t, uint8(12), cfg.Read.OutputBits)
	assert.Equal(t, uint8(3), cfg.Read.AveragePow)
}

func TestLoad_InvalidOutputBits(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString("read:\n  output_bits: 9\n")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	_, err = Load(tmpfile.Name())
	assert.Error(t, err, "out-of-range output width must fail at load time")
}

func TestLoad_InvalidAveragePow(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString("read:\n  output_bits: 16\n  average_pow: 26\n")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	_, err = Load(tmpfile.Name())
	assert.Error(t, err, "oversized averaging exponent must fail at load time")
}

func TestLoad_ZeroPrescalerFallsBack(t *testing.T) {
	// The zero-value pattern makes prescaler code 0 inexpressible from a
	// config file; it falls back to the default. Code 0 stays reachable by
	// calling Session.Open directly.
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString("session:\n  prescaler: 0\n")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.Equal(t, uint8(7), cfg.Session.Prescaler)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		outputBits uint8
		averagePow uint8
		wantErr    bool
	}{
		{name: "native width", outputBits: 10},
		{name: "maximum width", outputBits: 16},
		{name: "below range", outputBits: 9, wantErr: true},
		{name: "above range", outputBits: 17, wantErr: true},
		{name: "combined exponent at the limit", outputBits: 12, averagePow: 12},
		{name: "combined exponent past the limit", outputBits: 12, averagePow: 13, wantErr: true},
		{name: "averaging overflows the accumulator", outputBits: 16, averagePow: 26, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Read.OutputBits = tt.outputBits
			cfg.Read.AveragePow = tt.averagePow

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
