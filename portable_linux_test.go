//go:build linux

package uartring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openPTYPort(t *testing.T, cfg Config) (*Device, func(n int) string, func(s string)) {
	t.Helper()
	dev, master := openPTYDeviceWith(t, OpenPort, cfg)
	read := func(n int) string { return readN(t, master, n, time.Second) }
	send := func(s string) {
		_, err := master.Write([]byte(s))
		require.NoError(t, err)
	}
	return dev, read, send
}

func TestOpenPort_CopyUntilAndWriteString(t *testing.T) {
	dev, read, send := openPTYPort(t, Config{ReadTimeout: 20 * time.Millisecond})
	port := dev.Port()

	send("hello\r\n")
	dst := make([]byte, 32)
	n, err := port.CopyUntil([]byte("\r\n"), dst, time.Second)
	require.NoError(t, err)
	require.Equal(t, "hello\r\n", string(dst[:n]))

	require.NoError(t, port.WriteString("pong\r\n"))
	require.Equal(t, "pong\r\n", read(6))
	require.NoError(t, port.Drain(time.Second))

	// The receive goroutine notices Close within one read timeout.
	requireReturns(t, time.Second, func() { err = dev.Close() })
	require.NoError(t, err)
	require.NoError(t, dev.Err())
	require.False(t, port.Controller().RxEnabled())
	require.NoError(t, dev.Close())
}

func TestOpenPort_CloseWithStalledPeer(t *testing.T) {
	dev, _, _ := openPTYPort(t, Config{TxSize: 1 << 20, ReadTimeout: 20 * time.Millisecond})

	_, err := dev.Port().Write(make([]byte, 300000))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return dev.Port().Stats().TxBytes > 0 },
		time.Second, 5*time.Millisecond)

	requireReturns(t, 3*time.Second, func() { dev.Close() })
}

func TestOpenPort_Errors(t *testing.T) {
	_, err := OpenPort(Config{Device: "/dev/does-not-exist", Logger: quietLogger()})
	require.Error(t, err)
}

func TestPorts(t *testing.T) {
	_, err := Ports()
	require.NoError(t, err)
}
