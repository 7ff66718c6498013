package uartring

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports an empty pattern or a zero-length destination.
	// It is returned before anything is read or written.
	ErrInvalidArgument = errors.New("uartring: invalid argument")
	// ErrBufferEmpty reports a read from an empty receive ring.
	ErrBufferEmpty = errors.New("uartring: buffer empty")
	// ErrBufferFull reports that a ring or a destination buffer has no room left.
	ErrBufferFull = errors.New("uartring: buffer full")
	// ErrTimeout reports that a bounded wait expired.
	ErrTimeout = errors.New("uartring: timeout")
	// ErrNotFound reports a pattern absent from a source buffer.
	ErrNotFound = errors.New("uartring: pattern not found")
	// ErrClosed reports use of a Device after Close.
	ErrClosed = errors.New("uartring: device closed")
)

func timeoutError(op string, pattern []byte) error {
	if pattern == nil {
		return fmt.Errorf("%s: %w", op, ErrTimeout)
	}
	return fmt.Errorf("%s %q: %w", op, pattern, ErrTimeout)
}
