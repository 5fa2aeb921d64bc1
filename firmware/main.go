//go:generate tinygo flash -target=arduino

//go:build avr

package main

import (
	"machine"
	"time"

	"github.com/itohio/fastadc/pkg/adc"
)

var (
	uart = machine.UART0

	conv adc.AVR

	// Serial buffer for reading command lines
	lineBuffer [16]byte
	linePos    int
)

func main() {
	uart.Configure(machine.UARTConfig{
		BaudRate: UART_BAUD_RATE,
	})

	adc.InitAVR()

	// Main loop: execute one wire-protocol command at a time
	for {
		processSerial()

		// Small delay to prevent tight loop
		time.Sleep(100 * time.Microsecond)
	}
}

// processSerial reads available UART bytes into the line buffer and executes
// complete command lines (non-blocking).
func processSerial() {
	for uart.Buffered() > 0 {
		b, err := uart.ReadByte()
		if err != nil {
			return
		}

		if b == '\n' || b == '\r' {
			if linePos > 0 {
				handleCommand(lineBuffer[:linePos])
				linePos = 0
			}
			continue
		}

		if linePos < len(lineBuffer) {
			lineBuffer[linePos] = b
			linePos++
		} else {
			// Line too long, drop it
			linePos = 0
		}
	}
}

// handleCommand executes one command and prints the single decimal response
// line the host expects:
//
//	"S<channel>" - one conversion, respond with the 10-bit sample
//	"G"          - respond with the ADC control register
//	"C<value>"   - write the control register, respond with its new value
func handleCommand(line []byte) {
	switch line[0] {
	case 'S':
		print(conv.Sample(parseDecimal(line[1:])))
	case 'G':
		print(conv.Control())
	case 'C':
		conv.SetControl(parseDecimal(line[1:]))
		print(conv.Control())
	default:
		// Unknown command, keep the request/response pairing intact
		print(0)
	}
	print("\n")
}

// parseDecimal parses the leading decimal digits of a command argument.
func parseDecimal(digits []byte) uint8 {
	var v uint8
	for _, d := range digits {
		if d < '0' || d > '9' {
			break
		}
		v = v*10 + (d - '0')
	}
	return v
}
