package adc

// Resolution and register constants for the reference platform (ATmega328P).
const (
	// NativeBits is the converter's hardware resolution.
	NativeBits = 10
	// NativeMax is the largest value a single conversion can return.
	NativeMax = 1<<NativeBits - 1
	// PrescalerMask selects the prescaler bits of the control register.
	PrescalerMask = 0b111
)

// Session owns a temporary conversion-clock prescaler override on a
// Converter. Open snapshots the control register and installs a new
// prescaler code; Close writes the snapshot back. Defer Close right after
// Open so the previous configuration is restored however the scope exits.
//
// Prescaler reference (ATmega328P @ 16 MHz):
//
//	code | divider | ADC clock | notes
//	   2 | /2      | 8 MHz     | ultra fast, low accuracy
//	   3 | /4      | 4 MHz     | very fast
//	   4 | /8      | 2 MHz     | good balance
//	   5 | /16     | 1 MHz     | accurate, moderate speed
//	   6 | /32     | 500 kHz   | high accuracy
//	   7 | /64     | 250 kHz   | very accurate
//
// Codes 0 and 1 are below the hardware minimum; Open masks but does not
// reject them.
//
// Sessions do not nest. Opening a second session on the same converter, or
// reopening an active one, snapshots the already-modified register, so the
// inner Close restores the outer override instead of the true original.
// Known limitation, kept for compatibility with existing call sites.
//
// A session is meant for a single logical owner; it holds no locks.
type Session struct {
	conv      Converter
	active    bool
	prescaler uint8
	backup    uint8
}

// New returns an inactive session over the given converter.
func New(conv Converter) *Session {
	return &Session{conv: conv}
}

// Open snapshots the control register and installs the prescaler code.
// Only the low 3 bits of code are significant; out-of-range values are
// masked, not rejected. The upper 5 register bits are left untouched.
// Returns whether the session is now active, which is always true since
// masking guarantees a representable code.
func (s *Session) Open(code uint8) bool {
	s.prescaler = code & PrescalerMask
	s.backup = s.conv.Control()
	s.conv.SetControl(s.backup&^PrescalerMask | s.prescaler)
	s.active = true

	return s.IsActive()
}

// IsActive reports whether the session currently owns the prescaler setting.
func (s *Session) IsActive() bool {
	return s.active
}

// Close restores the control register captured by Open. Closing an inactive
// session is a no-op, so a deferred Close is always safe.
func (s *Session) Close() {
	if s.active {
		s.conv.SetControl(s.backup)
	}
	s.active = false
}

// ReadRaw performs a single conversion on the given channel. It does not
// require the session to be active; whatever prescaler is currently
// configured applies.
func (s *Session) ReadRaw(channel uint8) uint16 {
	return s.conv.Sample(channel)
}

// ReadAveraged performs 2^avgPow consecutive conversions and returns their
// truncating mean (integer shift, no round-to-nearest). avgPow 0 degenerates
// to a single raw read. The uint32 accumulator holds up to 2^16 full-scale
// samples, so avgPow must stay at or below 16; call sites fix it at build
// time and no runtime validation is performed.
func (s *Session) ReadAveraged(channel, avgPow uint8) uint16 {
	samples := uint32(1) << avgPow

	var sum uint32
	for i := uint32(0); i < samples; i++ {
		sum += uint32(s.conv.Sample(channel))
	}

	return uint16(sum >> avgPow)
}
