package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/itohio/fastadc/pkg/adc"
	"github.com/itohio/fastadc/pkg/config"
)

func main() {
	var (
		portFlag   = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag   = flag.Bool("mock", false, "Use mocked converter instead of serial port")
		countFlag  = flag.Int("n", 10, "Number of readings to print")
		listFlag   = flag.Bool("l", false, "List available serial ports and exit")
	)
	flag.Parse()

	if *listFlag {
		ports, err := adc.Ports()
		if err != nil {
			log.Fatalf("Failed to list serial ports: %v", err)
		}
		for _, p := range ports {
			fmt.Printf("%s\t%s\n", p.Name, p.Description)
		}
		return
	}

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override serial port if provided via command line
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}

	var conv adc.Converter
	if *mockFlag {
		mock := adc.NewMock(0x87) // ADEN set, prescaler /128
		mock.Simulate(512, 200, 8)
		conv = mock
	} else {
		dev := adc.NewSerial(cfg.Serial.Port, cfg.Serial.BaudRate)
		if err := dev.Connect(); err != nil {
			log.Fatalf("Failed to connect to %s: %v", cfg.Serial.Port, err)
		}
		defer dev.Close()
		conv = dev
	}

	session := adc.New(conv)
	session.Open(cfg.Session.Prescaler)
	defer session.Close()

	reader, err := session.HighResAveraged(cfg.Read.OutputBits, cfg.Read.AveragePow)
	if err != nil {
		log.Fatalf("Invalid read profile: %v", err)
	}

	log.Printf("Probing channel %d (prescaler %d, %d bits, 2^%d averaging)",
		cfg.Read.Channel, cfg.Session.Prescaler, cfg.Read.OutputBits, cfg.Read.AveragePow)

	for i := 0; i < *countFlag; i++ {
		raw := session.ReadRaw(cfg.Read.Channel)
		avg := session.ReadAveraged(cfg.Read.Channel, cfg.Read.AveragePow)
		hi := reader.Read(cfg.Read.Channel)
		fmt.Printf("raw=%4d avg=%4d highres=%5d\n", raw, avg, hi)
	}
}
