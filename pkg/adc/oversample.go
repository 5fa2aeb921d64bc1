package adc

import "fmt"

// Output width bounds for oversampled reads.
const (
	MinOutputBits = 10
	MaxOutputBits = 16

	// MaxTotalShift bounds the combined sample exponent: the uint32
	// accumulator holds at most 2^16 full-scale samples.
	MaxTotalShift = 16
)

// Oversampler produces simulated high-resolution readings by oversampling
// and decimation: each extra output bit beyond the native width costs 4x the
// samples. The output width and averaging exponent are fixed at construction,
// mirroring call sites where they are build-time constants.
type Oversampler struct {
	conv       Converter
	outputBits uint8
	extraBits  uint8
	totalShift uint8
}

// NewOversampler creates an oversampler producing outputBits-wide readings
// with 2^avgPow extra averaging per reading. Both parameters are validated
// before any hardware access: outputBits outside [MinOutputBits,
// MaxOutputBits] is a contract violation, and avgPow may not push the
// combined sample exponent past MaxTotalShift, where a reading would
// overflow the accumulator.
func NewOversampler(conv Converter, outputBits, avgPow uint8) (*Oversampler, error) {
	if outputBits < MinOutputBits || outputBits > MaxOutputBits {
		return nil, fmt.Errorf("output width %d: must be between %d and %d bits",
			outputBits, MinOutputBits, MaxOutputBits)
	}

	extra := outputBits - NativeBits

	// Widen before adding: 2*extra+avgPow must not wrap a uint8.
	total := 2*uint16(extra) + uint16(avgPow)
	if total > MaxTotalShift {
		return nil, fmt.Errorf("averaging exponent %d: 2^%d samples per reading, at most 2^%d fit the accumulator",
			avgPow, total, MaxTotalShift)
	}

	return &Oversampler{
		conv:       conv,
		outputBits: outputBits,
		extraBits:  extra,
		totalShift: uint8(total),
	}, nil
}

// OutputBits returns the configured output width.
func (o *Oversampler) OutputBits() uint8 {
	return o.outputBits
}

// Read performs 2^(2*extraBits + avgPow) conversions on the given channel,
// takes the truncating mean, and scales it up into the output width. The low
// extraBits bits of the result are always zero: decimation scaling shifts
// the mean up by extraBits. With outputBits at the native width and avgPow 0
// this is exactly one raw read.
func (o *Oversampler) Read(channel uint8) uint16 {
	samples := uint32(1) << o.totalShift

	var sum uint32
	for i := uint32(0); i < samples; i++ {
		sum += uint32(o.conv.Sample(channel))
	}

	avg := uint16(sum >> o.totalShift)

	return avg << o.extraBits
}

// HighRes returns an oversampler over the session's converter producing
// outputBits-wide readings with no extra averaging.
func (s *Session) HighRes(outputBits uint8) (*Oversampler, error) {
	return NewOversampler(s.conv, outputBits, 0)
}

// HighResAveraged returns an oversampler over the session's converter that
// combines oversampling with 2^avgPow extra averaging per reading.
func (s *Session) HighResAveraged(outputBits, avgPow uint8) (*Oversampler, error) {
	return NewOversampler(s.conv, outputBits, avgPow)
}
