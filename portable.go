package uartring

import (
	"fmt"

	"go.bug.st/serial"
	"go.uber.org/atomic"
)

// portLink drives a go.bug.st/serial port. Reads time out every
// Config.ReadTimeout so the receive loop notices Close. A write stuck on a
// peer that stopped reading is released by discarding the output queue.
type portLink struct {
	port   serial.Port
	closed atomic.Bool
}

// OpenPort opens cfg.Device with go.bug.st/serial at 8N1 and attaches a new
// Port to it. It works on every OS the library supports.
func OpenPort(cfg Config) (*Device, error) {
	cfg = cfg.withDefaults()
	port, err := New(cfg)
	if err != nil {
		return nil, err
	}

	mode := &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	sp, err := serial.Open(cfg.Device, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Device, err)
	}
	if err := sp.SetReadTimeout(cfg.ReadTimeout); err != nil {
		sp.Close()
		return nil, fmt.Errorf("set read timeout: %w", err)
	}
	return newDevice(cfg.Device, port, &portLink{port: sp}), nil
}

// Ports lists the serial ports present on the system.
func Ports() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("list ports: %w", err)
	}
	return ports, nil
}

func (l *portLink) read(p []byte) (int, error) {
	if l.closed.Load() {
		return 0, ErrClosed
	}
	n, err := l.port.Read(p)
	if err != nil && l.closed.Load() {
		return 0, ErrClosed
	}
	return n, err
}

func (l *portLink) write(p []byte) (int, error) {
	if l.closed.Load() {
		return 0, ErrClosed
	}
	n, err := l.port.Write(p)
	if l.closed.Load() {
		return n, ErrClosed
	}
	return n, err
}

func (l *portLink) wake() {
	l.closed.Store(true)
	l.port.ResetOutputBuffer()
}

func (l *portLink) close() error { return l.port.Close() }
