package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	uartring "github.com/luhtfiimanal/go-uart-ring"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	device   string
	baud     int
	timeout  time.Duration
	portable bool
	verbose  bool
	logJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "uartring",
	Short: "Interrupt-style ring-buffered serial transport",
	Long: `Talk to a serial device through ring-buffered receive and transmit queues
with timeout-bounded pattern matching on the receive stream.

Examples:
  uartring ports                                    # List serial ports
  uartring send -d /dev/ttyUSB0 --crlf AT           # Send a command
  uartring wait -d /dev/ttyUSB0 -t 2s OK            # Wait for a reply
  uartring copy -d /dev/ttyUSB0 --crlf              # Print one line
  echo 'x<A>hi</A>' | uartring extract '<A>' '</A>' # Extract a field`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		uartring.SetLogLevel(level)
		if logJSON {
			uartring.SetLogger(uartring.NewJSONLogger(os.Stderr, nil))
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&device, "device", "d", "/dev/ttyUSB0", "serial device")
	rootCmd.PersistentFlags().IntVarP(&baud, "baud", "b", uartring.DefaultBaudRate, "baud rate")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "t", time.Second, "timeout for bounded waits")
	rootCmd.PersistentFlags().BoolVar(&portable, "portable", false, "use the portable go.bug.st/serial backend instead of raw termios")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as JSON")
}

// openDevice opens the configured device with the selected backend.
func openDevice() (*uartring.Device, error) {
	cfg := uartring.Config{Device: device, BaudRate: baud}
	if portable {
		return uartring.OpenPort(cfg)
	}
	return openNative(cfg)
}

// terminator returns the pattern selected by --crlf, or fallback.
func terminator(crlf bool, fallback string) []byte {
	if crlf {
		return []byte("\r\n")
	}
	return []byte(fallback)
}

// checkMax rejects a --max that leaves no room for the terminator.
func checkMax(n int) error {
	if n < 1 {
		return fmt.Errorf("--max %d: must be at least 1: %w", n, uartring.ErrInvalidArgument)
	}
	return nil
}
