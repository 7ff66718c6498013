package uartring

import (
	"errors"
	"log/slog"
	"sync"
)

// link is the OS side of a Device.
type link interface {
	// read blocks until bytes arrive, the link is woken (ErrClosed), or an
	// idle interval passes (0, nil).
	read(p []byte) (int, error)
	// write returns ErrClosed once the link has been woken, including while
	// it is waiting for the peer to make room.
	write(p []byte) (int, error)
	// wake unblocks a pending read or write so it returns ErrClosed.
	wake()
	close() error
}

// Device plays the UART peripheral for a Port on a host. Two goroutines act
// as its interrupt context: one delivers every byte read from the OS handle
// through OnByteReceived, the other services OnTransmitReady while the
// transmit interrupt is enabled and writes each byte it returns.
type Device struct {
	name string
	port *Port
	link link
	log  *slog.Logger

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup

	errMu sync.Mutex
	err   error
}

func newDevice(name string, port *Port, l link) *Device {
	d := &Device{
		name: name,
		port: port,
		link: l,
		log:  componentLogger(port.cfg.Logger, ComponentDevice).With("device", name),
		done: make(chan struct{}),
	}
	port.Init()
	d.wg.Add(2)
	go d.receiveLoop()
	go d.transmitLoop()
	d.log.Info("opened")
	return d
}

// Port returns the port attached to the device.
func (d *Device) Port() *Port { return d.port }

// Name returns the device path.
func (d *Device) Name() string { return d.name }

// Err returns the I/O error that stopped the device, if any.
func (d *Device) Err() error {
	d.errMu.Lock()
	defer d.errMu.Unlock()
	return d.err
}

// Done is closed when Close is called.
func (d *Device) Done() <-chan struct{} { return d.done }

func (d *Device) fail(err error) {
	d.errMu.Lock()
	if d.err == nil {
		d.err = err
	}
	d.errMu.Unlock()
	d.log.Error("i/o failed", "err", err)
}

func (d *Device) receiveLoop() {
	defer d.wg.Done()
	ctl := d.port.ctl
	buf := make([]byte, 256)
	for {
		n, err := d.link.read(buf)
		if err != nil {
			if !errors.Is(err, ErrClosed) {
				d.fail(err)
			}
			return
		}
		for _, c := range buf[:n] {
			// A masked receive source loses the byte, as the hardware would.
			if !ctl.RxEnabled() {
				continue
			}
			ctl.Raise(func() { d.port.OnByteReceived(c) })
		}
	}
}

func (d *Device) transmitLoop() {
	defer d.wg.Done()
	ctl := d.port.ctl

	var out [1]byte
	var ok bool
	isr := func() { out[0], ok = d.port.OnTransmitReady() }

	for {
		select {
		case <-d.done:
			return
		case <-ctl.TxArmed():
		}
		for ctl.TxEnabled() {
			select {
			case <-d.done:
				return
			default:
			}
			ctl.Raise(isr)
			if !ok {
				break
			}
			if _, err := d.link.write(out[:]); err != nil {
				if !errors.Is(err, ErrClosed) {
					d.fail(err)
				}
				return
			}
		}
	}
}

// Close stops both interrupt goroutines and releases the OS handle. Bytes
// still queued for transmission are discarded; call Port.Drain first to send
// them. Safe to call multiple times; subsequent calls are no-ops.
func (d *Device) Close() error {
	var err error
	d.closeOnce.Do(func() {
		close(d.done)
		d.link.wake()
		d.wg.Wait()

		ctl := d.port.ctl
		ctl.DisableRx()
		ctl.Lock()
		ctl.DisableTx()
		ctl.Unlock()

		err = d.link.close()
		d.log.Info("closed", "stats", d.port.Stats())
	})
	return err
}
