//go:build linux

package cmd

import uartring "github.com/luhtfiimanal/go-uart-ring"

func openNative(cfg uartring.Config) (*uartring.Device, error) {
	return uartring.OpenTTY(cfg)
}
