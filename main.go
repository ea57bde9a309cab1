package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"emf-meter.klederson.com/internal/app"
	"emf-meter.klederson.com/internal/config"
	"emf-meter.klederson.com/internal/meter"
	"emf-meter.klederson.com/internal/recorder"
	"emf-meter.klederson.com/internal/sensor"
	"emf-meter.klederson.com/internal/settings"
	"emf-meter.klederson.com/internal/telemetry"
)

var (
	flagDemo       bool
	flagSource     string
	flagI2CBus     string
	flagI2CAddr    uint16
	flagUnit       string
	flagConfig     string
	flagMQTTBroker string
	flagListen     string
	flagRecord     string
	flagGPSPort    string
	flagGPSBaud    uint
	flagSeed       int64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "emf-meter",
		Short: "EMF Meter - Terminal electromagnetic field meter with analog gauge",
		Long: `EMF Meter reads a 3-axis magnetometer and displays the field strength
on an analog needle gauge with Geiger-style clicks, in microtesla,
milligauss, or gauss.

Sensor input comes from a Linux IIO magnetometer, an HMC5983 on an I2C
bus, or a BLE field probe. Use --demo for a simulated sensor with
wandering baseline and hotspot surges.`,
		RunE: run,
	}

	rootCmd.Flags().BoolVar(&flagDemo, "demo", false, "Run with a simulated magnetometer (no hardware required)")
	rootCmd.Flags().StringVar(&flagSource, "source", "auto", "Sensor source: auto, mock, iio, ble, or i2c")
	rootCmd.Flags().StringVar(&flagI2CBus, "i2c-bus", "", "I2C bus for --source=i2c (empty = first available)")
	rootCmd.Flags().Uint16Var(&flagI2CAddr, "i2c-addr", 0x1E, "I2C address of the HMC5983")
	rootCmd.Flags().StringVar(&flagUnit, "unit", "", "Display unit: uT, mG, or G (overrides saved setting)")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Settings file path (default: user config dir)")
	rootCmd.Flags().StringVar(&flagMQTTBroker, "mqtt-broker", "", "Publish readings to this MQTT broker (e.g. tcp://host:1883)")
	rootCmd.Flags().StringVar(&flagListen, "listen", "", "Serve readings over HTTP/websocket on this address (e.g. :8080)")
	rootCmd.Flags().StringVar(&flagRecord, "record", "", "Record survey rows to this CSV file")
	rootCmd.Flags().StringVar(&flagGPSPort, "gps-port", "", "Serial port of an NMEA GPS to tag survey rows")
	rootCmd.Flags().UintVar(&flagGPSBaud, "gps-baud", 9600, "Baud rate of the GPS serial port")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "Needle jitter seed (0 = random)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	settingsPath := flagConfig
	if settingsPath == "" {
		p, err := settings.DefaultPath()
		if err != nil {
			return err
		}
		settingsPath = p
	}
	saved, err := settings.Load(settingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}

	unit := saved.SelectedUnit()
	if flagUnit != "" {
		u, err := meter.ParseUnit(flagUnit)
		if err != nil {
			return err
		}
		unit = u
	}

	source, err := selectSource()
	if err != nil {
		return err
	}

	opts := app.Options{
		Unit:         unit,
		Seed:         flagSeed,
		SettingsPath: settingsPath,
		Calibration:  saved.Calibration,
		Source:       source,
	}

	if flagMQTTBroker != "" {
		pub, err := telemetry.NewMQTTPublisher(flagMQTTBroker,
			fmt.Sprintf("emf-meter-%d", os.Getpid()), config.DefaultMQTTTopic)
		if err != nil {
			return err
		}
		opts.MQTT = pub
	}

	var server *telemetry.Server
	if flagListen != "" {
		hub := telemetry.NewHub()
		server = telemetry.NewServer(flagListen, hub)
		server.Start()
		defer server.Close()
		opts.Hub = hub
	}

	if flagRecord != "" {
		var gps *recorder.GPSReader
		if flagGPSPort != "" {
			gps = recorder.NewGPSReader(flagGPSPort, flagGPSBaud)
			if err := gps.Start(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v (recording without position)\n", err)
				gps = nil
			} else {
				defer gps.Stop()
			}
		}
		rec, err := recorder.New(flagRecord, gps)
		if err != nil {
			return err
		}
		opts.Recorder = rec
		opts.Recording = true
	}

	model := app.New(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(config.TargetFPS),
	)

	// Start the sensor with a reference to the tea program
	if err := model.StartSource(p); err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
		fmt.Fprintln(os.Stderr, "No usable magnetometer was found.")
		fmt.Fprintln(os.Stderr, "Try one of:")
		fmt.Fprintln(os.Stderr, "  ./emf-meter --source=iio     (Linux industrial-I/O sensor)")
		fmt.Fprintln(os.Stderr, "  ./emf-meter --source=i2c     (HMC5983 on an I2C bus)")
		fmt.Fprintln(os.Stderr, "  ./emf-meter --demo           (simulated sensor, no hardware)")
		return err
	}

	_, err = p.Run()
	return err
}

// selectSource maps the --source flag to a sensor implementation. auto
// prefers a real sensor and falls back to the simulator.
func selectSource() (sensor.Source, error) {
	if flagDemo {
		return sensor.NewMockSource(), nil
	}

	switch flagSource {
	case "mock":
		return sensor.NewMockSource(), nil
	case "iio":
		return sensor.NewIIOSource(), nil
	case "ble":
		return sensor.NewBLESource(), nil
	case "i2c":
		return sensor.NewHMC5983Source(flagI2CBus, flagI2CAddr), nil
	case "auto":
		if sensor.IIOAvailable() {
			return sensor.NewIIOSource(), nil
		}
		return sensor.NewMockSource(), nil
	default:
		return nil, fmt.Errorf("unknown source %q (want auto, mock, iio, ble, or i2c)", flagSource)
	}
}
