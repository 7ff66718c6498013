//go:build !linux

package cmd

import uartring "github.com/luhtfiimanal/go-uart-ring"

// Raw termios is Linux-only; elsewhere the portable backend is the native one.
func openNative(cfg uartring.Config) (*uartring.Device, error) {
	return uartring.OpenPort(cfg)
}
