//go:build avr

package adc

import (
	"device/avr"
	"machine"
)

// AVR is the on-metal Converter for the ATmega328P. Conversions go through
// machine.ADC; the control register is ADCSRA, so a Session's prescaler
// override directly retunes the hardware conversion clock.
type AVR struct{}

// Ensure AVR implements Converter.
var _ Converter = AVR{}

// adcPins maps channel identifiers to the ATmega328P analog input pins.
var adcPins = [...]machine.Pin{
	machine.ADC0, machine.ADC1, machine.ADC2,
	machine.ADC3, machine.ADC4, machine.ADC5,
}

// InitAVR configures the analog pins. Call once at startup, before the
// first conversion.
func InitAVR() {
	machine.InitADC()
	for _, pin := range adcPins {
		machine.ADC{Pin: pin}.Configure(machine.ADCConfig{})
	}
}

// Sample performs one conversion and scales the result back to the native
// 10-bit width (machine.ADC.Get returns a left-adjusted 16-bit value).
func (AVR) Sample(channel uint8) uint16 {
	pin := adcPins[int(channel)%len(adcPins)]
	return machine.ADC{Pin: pin}.Get() >> (16 - NativeBits)
}

// Control returns ADCSRA.
func (AVR) Control() uint8 {
	return avr.ADCSRA.Get()
}

// SetControl writes ADCSRA.
func (AVR) SetControl(value uint8) {
	avr.ADCSRA.Set(value)
}
