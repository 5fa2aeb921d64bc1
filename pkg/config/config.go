package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/itohio/fastadc/pkg/adc"
)

// Config represents the application configuration.
type Config struct {
	Serial  SerialConfig  `yaml:"serial"`
	Session SessionConfig `yaml:"session"`
	Read    ReadConfig    `yaml:"read"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// SessionConfig contains the prescaler override installed for the session.
type SessionConfig struct {
	Prescaler uint8 `yaml:"prescaler"` // conversion clock divider code (2-7 are hardware-meaningful)
}

// ReadConfig describes the read profile. These values stand in for the
// build-time constants of on-device call sites, so they are validated once
// at startup and never re-checked on the read path.
type ReadConfig struct {
	Channel    uint8 `yaml:"channel"`
	OutputBits uint8 `yaml:"output_bits"` // simulated resolution, 10-16
	AveragePow uint8 `yaml:"average_pow"` // 2^n extra samples per reading
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port:     "COM3", // Default for Windows, should be "/dev/ttyACM0" on Linux/Mac
			BaudRate: adc.DefaultBaudRate,
		},
		Session: SessionConfig{
			Prescaler: 7, // /64, the most accurate hardware setting
		},
		Read: ReadConfig{
			Channel:    0,
			OutputBits: adc.NativeBits,
			AveragePow: 0,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values. An invalid read profile fails
// the load, so misconfiguration is fatal at startup rather than surfacing
// mid-measurement.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks constraints that on-device call sites enforce at compile
// time.
func (c *Config) Validate() error {
	if c.Read.OutputBits < adc.MinOutputBits || c.Read.OutputBits > adc.MaxOutputBits {
		return fmt.Errorf("output_bits %d: must be between %d and %d",
			c.Read.OutputBits, adc.MinOutputBits, adc.MaxOutputBits)
	}

	extra := uint16(c.Read.OutputBits - adc.NativeBits)
	if total := 2*extra + uint16(c.Read.AveragePow); total > adc.MaxTotalShift {
		return fmt.Errorf("average_pow %d: 2^%d samples per reading, at most 2^%d fit the accumulator",
			c.Read.AveragePow, total, adc.MaxTotalShift)
	}

	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.BaudRate == 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}

	if c.Session.Prescaler == 0 {
		// Zero-value fallback: the config file cannot express the
		// sub-minimum code 0, which stays reachable only through a direct
		// Open call. Code 1 is expressible as written.
		c.Session.Prescaler = def.Session.Prescaler
	}

	if c.Read.OutputBits == 0 {
		c.Read.OutputBits = def.Read.OutputBits
	}
}
