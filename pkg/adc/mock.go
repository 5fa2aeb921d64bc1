package adc

import (
	"sync"

	"github.com/chewxy/math32"
)

// Mock simulates an ADC peripheral for testing and development. The control
// register is an ordinary byte, so prescaler sessions behave exactly as they
// would on hardware. By default every conversion returns midscale; Script
// installs a fixed result sequence and Simulate a synthetic noisy signal.
type Mock struct {
	mu      sync.RWMutex
	control uint8
	script  []uint16
	pos     int
	source  func(channel uint8) uint16
	reads   int
}

// Ensure Mock implements Converter.
var _ Converter = (*Mock)(nil)

// NewMock creates a mock converter with the given initial control register
// value. 0x87 matches an ATmega328P after Arduino init (ADEN set,
// prescaler /128).
func NewMock(control uint8) *Mock {
	return &Mock{control: control}
}

// Script makes subsequent conversions cycle through the given values.
// It clears any simulated signal source.
func (m *Mock) Script(values ...uint16) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.script = values
	m.pos = 0
	m.source = nil
}

// Simulate makes conversions return a noisy sine signal centered on bias,
// clamped to the native range. Useful for exercising oversampled reads with
// something less sterile than a constant.
func (m *Mock) Simulate(bias, amplitude, noise float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	phase := float32(0)
	m.source = func(channel uint8) uint16 {
		phase += 0.05
		v := bias + amplitude*math32.Sin(phase) + noise*math32.Cos(13*phase)
		if v < 0 {
			v = 0
		}
		if v > NativeMax {
			v = NativeMax
		}
		return uint16(v)
	}
}

// Sample returns the next simulated conversion result.
func (m *Mock) Sample(channel uint8) uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reads++

	if m.source != nil {
		return m.source(channel)
	}
	if len(m.script) > 0 {
		v := m.script[m.pos]
		m.pos = (m.pos + 1) % len(m.script)
		return v
	}

	return (NativeMax + 1) / 2
}

// Control returns the simulated control register.
func (m *Mock) Control() uint8 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.control
}

// SetControl writes the simulated control register.
func (m *Mock) SetControl(value uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.control = value
}

// Reads returns the number of conversions performed so far.
func (m *Mock) Reads() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reads
}
