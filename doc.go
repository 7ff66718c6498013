// Package uartring provides an interrupt-driven serial transport built on two
// fixed-capacity ring buffers, with timeout-bounded stream parsing on top of
// the receive side.
//
// A Port decouples the hardware edge from application code. The edge, which
// runs in interrupt context, calls OnByteReceived for every received byte and
// OnTransmitReady whenever the transmit register can take the next byte.
// Application code reads and writes through the foreground API:
//   - ReadByte, PeekByte, Available and FlushRX on the receive ring
//   - WriteByte, WriteString and Write on the transmit ring
//   - WaitForString, CopyUntil and WaitForData for bounded stream parsing
//
// ExtractBetween works on an already received buffer and never waits.
//
// Every wait is a busy-wait bounded by a millisecond deadline; there is no
// other cancellation. Received bytes that do not fit in the receive ring are
// dropped and counted in Stats.
//
// On a host, a Device plays the peripheral: OpenTTY drives a Linux tty with
// raw termios, OpenPort drives any port go.bug.st/serial can open.
//
// Example usage:
//
//	cfg := uartring.Config{
//	    Device:   "/dev/ttyUSB0",
//	    BaudRate: 115200,
//	}
//	dev, err := uartring.OpenTTY(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer dev.Close()
//
//	port := dev.Port()
//	if err := port.WriteString("AT\r\n"); err != nil {
//	    log.Println("write failed:", err)
//	}
//	if err := port.WaitForString([]byte("OK"), time.Second); err != nil {
//	    log.Println("no reply:", err)
//	}
//
// The foreground API of a Port must be used from one goroutine at a time.
package uartring
