package adc

// Converter is the platform ADC a session drives. Implementations perform
// one hardware conversion per Sample call and expose the peripheral's
// one-byte control register for prescaler manipulation.
type Converter interface {
	// Sample performs a single conversion on the given channel and returns
	// the native-resolution result (10-bit, 0-1023).
	Sample(channel uint8) uint16
	// Control returns the current value of the ADC control register.
	Control() uint8
	// SetControl writes the ADC control register.
	SetControl(value uint8)
}
