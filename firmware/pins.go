//go:build avr

package main

const (
	// Serial configuration
	// Baud rate calculation: the longest exchange is "S<ch>\n" in and a
	// 5-digit decimal line out, ~8 bytes round trip. Even at the fastest
	// prescaler a conversion takes ~13 ADC clocks, so 115200 8N1
	// (~11,520 bytes/sec) never becomes the bottleneck.
	UART_BAUD_RATE = 115200
)
