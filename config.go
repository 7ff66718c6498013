package uartring

import (
	"log/slog"
	"time"

	"github.com/luhtfiimanal/go-uart-ring/irq"
	"github.com/luhtfiimanal/go-uart-ring/tick"
)

const (
	// DefaultBufferSize is the backing size of each ring. One slot is kept
	// free, so a ring holds DefaultBufferSize-1 bytes.
	DefaultBufferSize = 1024
	// DefaultWriteTimeout bounds how long WriteByte waits for a free slot.
	DefaultWriteTimeout = 500 * time.Millisecond
	// DefaultBaudRate is used by the device backends when BaudRate is zero.
	DefaultBaudRate = 115200

	defaultReadTimeout = 100 * time.Millisecond
)

// Config holds the parameters of a Port and, for OpenTTY and OpenPort, of the
// serial device behind it. Zero fields take their defaults.
type Config struct {
	// Device is the serial device path, e.g. /dev/ttyUSB0.
	Device   string
	BaudRate int
	// ReadTimeout is how often a Device's receive loop wakes up to check for
	// Close when the line is idle.
	ReadTimeout time.Duration

	RxSize       int
	TxSize       int
	WriteTimeout time.Duration

	// Clock is the millisecond tick source for every deadline.
	Clock tick.Clock
	// Controller is the interrupt line shared with the peripheral.
	Controller *irq.Controller
	Logger     *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.BaudRate == 0 {
		c.BaudRate = DefaultBaudRate
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = defaultReadTimeout
	}
	if c.RxSize == 0 {
		c.RxSize = DefaultBufferSize
	}
	if c.TxSize == 0 {
		c.TxSize = DefaultBufferSize
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.Clock == nil {
		c.Clock = tick.System()
	}
	if c.Controller == nil {
		c.Controller = irq.New()
	}
	if c.Logger == nil {
		c.Logger = Logger()
	}
	return c
}
