//go:build !avr

package adc

import (
	"bufio"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"
)

const (
	// DefaultBaudRate matches the firmware UART configuration.
	DefaultBaudRate = 115200
	// DefaultReadTimeout bounds the wait for a single response line.
	DefaultReadTimeout = 500 * time.Millisecond
)

// Port represents a serial port.
type Port struct {
	Name        string
	Description string
}

// Serial is a Converter backed by a tethered board running the fastadc
// firmware. The wire protocol is one ASCII command line per request
// ("S<channel>" for a conversion, "G" for the control register, "C<value>"
// to write it), each answered by a single decimal response line.
//
// The converter contract has no error channel, so transport failures are
// logged and reported as a zero reading.
type Serial struct {
	port     string
	baudRate int

	mu        sync.Mutex
	conn      serial.Port
	reader    *bufio.Reader
	connected bool
}

// Ensure Serial implements Converter.
var _ Converter = (*Serial)(nil)

// NewSerial creates a new serial converter for the specified port and baud
// rate. A zero baud rate selects DefaultBaudRate.
func NewSerial(port string, baudRate int) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}

	return &Serial{
		port:     port,
		baudRate: baudRate,
	}
}

// Ports returns a list of available serial ports.
func Ports() ([]Port, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	result := make([]Port, 0, len(ports))
	for _, name := range ports {
		result = append(result, Port{
			Name:        name,
			Description: name,
		})
	}

	return result, nil
}

// Connect opens the serial port.
func (d *Serial) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return fmt.Errorf("already connected")
	}

	conn, err := serial.Open(d.port, &serial.Mode{
		BaudRate: d.baudRate,
	})
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", d.port, err)
	}

	if err := conn.SetReadTimeout(DefaultReadTimeout); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set read timeout: %w", err)
	}

	d.conn = conn
	d.reader = bufio.NewReader(conn)
	d.connected = true

	return nil
}

// Close closes the serial port. Closing an unconnected converter is a no-op.
func (d *Serial) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil
	}

	if err := d.conn.Close(); err != nil {
		log.Printf("Error closing serial port: %v", err)
	}

	d.conn = nil
	d.reader = nil
	d.connected = false

	return nil
}

// IsConnected returns whether the converter is currently connected.
func (d *Serial) IsConnected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connected
}

// Sample requests a single conversion on the given channel.
func (d *Serial) Sample(channel uint8) uint16 {
	v, err := d.request(fmt.Sprintf("S%d\n", channel))
	if err != nil {
		log.Printf("Sample request failed: %v", err)
		return 0
	}

	return v
}

// Control reads the board's ADC control register.
func (d *Serial) Control() uint8 {
	v, err := d.request("G\n")
	if err != nil {
		log.Printf("Control request failed: %v", err)
		return 0
	}

	return uint8(v)
}

// SetControl writes the board's ADC control register. The firmware echoes
// the new register value so every command has exactly one response line.
func (d *Serial) SetControl(value uint8) {
	if _, err := d.request(fmt.Sprintf("C%d\n", value)); err != nil {
		log.Printf("SetControl request failed: %v", err)
	}
}

// request writes one command line and parses the single response line.
func (d *Serial) request(cmd string) (uint16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return 0, fmt.Errorf("not connected")
	}

	if _, err := d.conn.Write([]byte(cmd)); err != nil {
		return 0, fmt.Errorf("failed to send command %q: %w", strings.TrimSpace(cmd), err)
	}

	line, err := d.reader.ReadString('\n')
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}

	return parseResponse(line)
}

// parseResponse parses a decimal response line from the firmware.
func parseResponse(line string) (uint16, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, fmt.Errorf("empty response")
	}

	v, err := strconv.ParseUint(line, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("failed to parse response %q: %w", line, err)
	}

	return uint16(v), nil
}
