package uartring

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/luhtfiimanal/go-uart-ring/irq"
	"github.com/luhtfiimanal/go-uart-ring/ring"
	"github.com/luhtfiimanal/go-uart-ring/tick"
	"go.uber.org/atomic"
)

// Port is one serial port: a receive ring filled in interrupt context and
// drained by the foreground, and a transmit ring filled by the foreground and
// drained in interrupt context.
type Port struct {
	cfg   Config
	ctl   *irq.Controller
	clock tick.Clock
	log   *slog.Logger
	isr   *slog.Logger

	rx    *ring.Buffer
	rxIn  ring.Producer // interrupt context
	rxOut ring.Consumer // foreground
	tx    *ring.Buffer
	txIn  ring.Producer // foreground
	txOut ring.Consumer // interrupt context

	stats counters
}

type counters struct {
	rxBytes     atomic.Uint32
	rxDropped   atomic.Uint32
	txBytes     atomic.Uint32
	timeouts    atomic.Uint32
	overflowing atomic.Bool
}

// Stats holds counters since the Port was created.
type Stats struct {
	RxBytes   uint32 // bytes stored in the receive ring
	RxDropped uint32 // bytes lost because the receive ring was full
	TxBytes   uint32 // bytes handed to the transmit register
	Timeouts  uint32 // bounded waits that expired
}

// New allocates both rings. The port does not accept received bytes until
// Init is called.
func New(cfg Config) (*Port, error) {
	cfg = cfg.withDefaults()

	rx, err := ring.New(cfg.RxSize)
	if err != nil {
		return nil, fmt.Errorf("rx buffer: %w", err)
	}
	tx, err := ring.New(cfg.TxSize)
	if err != nil {
		return nil, fmt.Errorf("tx buffer: %w", err)
	}

	return &Port{
		cfg:   cfg,
		ctl:   cfg.Controller,
		clock: cfg.Clock,
		log:   componentLogger(cfg.Logger, ComponentPort),
		isr:   componentLogger(cfg.Logger, ComponentISR),
		rx:    rx,
		rxIn:  rx.Producer(),
		rxOut: rx.Consumer(),
		tx:    tx,
		txIn:  tx.Producer(),
		txOut: tx.Consumer(),
	}, nil
}

// Init empties both rings and enables the receive interrupt. Calling it again
// discards anything buffered.
func (p *Port) Init() {
	p.rx.Clear(p.ctl)
	p.tx.Clear(p.ctl)
	p.ctl.EnableRx()
	p.log.Debug("initialized", "rx_size", p.rx.Size(), "tx_size", p.tx.Size())
}

// Controller returns the interrupt line the port is attached to.
func (p *Port) Controller() *irq.Controller { return p.ctl }

// ReadByte removes one byte from the receive ring without waiting.
func (p *Port) ReadByte() (byte, error) {
	c, ok := p.rxOut.Get()
	if !ok {
		return 0, ErrBufferEmpty
	}
	return c, nil
}

// PeekByte returns the next received byte without removing it.
func (p *Port) PeekByte() (byte, error) {
	c, ok := p.rxOut.PeekByte()
	if !ok {
		return 0, ErrBufferEmpty
	}
	return c, nil
}

// Available returns the number of bytes waiting in the receive ring.
func (p *Port) Available() int { return p.rxOut.Used() }

// FlushRX discards everything in the receive ring.
func (p *Port) FlushRX() {
	p.rx.Clear(p.ctl)
}

// WriteByte queues c for transmission, waiting up to Config.WriteTimeout for
// a free slot. It returns once c is queued, not once it is on the wire.
func (p *Port) WriteByte(c byte) error {
	t := tick.Start(p.clock)
	if !tick.Poll(&t, tick.Millis(p.cfg.WriteTimeout), p.txHasRoom) {
		return p.timedOut(timeoutError("write", nil))
	}
	return p.enqueue(c)
}

// enqueue stores c in the transmit ring and arms the transmit interrupt.
func (p *Port) enqueue(c byte) error {
	if !p.txIn.Put(c) {
		return ErrBufferFull
	}

	// Arming inside the critical section keeps it from interleaving with a
	// transmit-ready routine that has just seen an empty ring.
	p.ctl.Lock()
	p.ctl.EnableTx()
	p.ctl.Unlock()
	return nil
}

func (p *Port) txHasRoom() bool { return !p.txIn.Full() }

// WriteString queues s byte by byte and stops at the first error.
func (p *Port) WriteString(s string) error {
	for i := 0; i < len(s); i++ {
		if err := p.WriteByte(s[i]); err != nil {
			return err
		}
	}
	return nil
}

// Write implements io.Writer on top of WriteByte.
func (p *Port) Write(b []byte) (int, error) {
	for i, c := range b {
		if err := p.WriteByte(c); err != nil {
			return i, err
		}
	}
	return len(b), nil
}

// Pending returns the number of bytes queued for transmission.
func (p *Port) Pending() int { return p.txIn.Used() }

// Drain waits until the transmit interrupt has taken every queued byte. It
// does not wait for the bytes to leave the wire.
func (p *Port) Drain(timeout time.Duration) error {
	t := tick.Start(p.clock)
	if !tick.Poll(&t, tick.Millis(timeout), func() bool { return p.txIn.Used() == 0 }) {
		return p.timedOut(timeoutError("drain", nil))
	}
	return nil
}

// WaitForData waits until at least one byte has been received.
func (p *Port) WaitForData(timeout time.Duration) error {
	t := tick.Start(p.clock)
	if !p.awaitData(&t, tick.Millis(timeout)) {
		return p.timedOut(timeoutError("wait for data", nil))
	}
	return nil
}

// awaitData is the shared busy-wait behind every receive-side operation.
func (p *Port) awaitData(t *tick.Timer, timeoutMs uint32) bool {
	return tick.Poll(t, timeoutMs, p.rxReady)
}

func (p *Port) rxReady() bool { return !p.rxOut.Empty() }

func (p *Port) timedOut(err error) error {
	p.stats.timeouts.Inc()
	p.log.Debug("timeout", "err", err)
	return err
}

// Stats returns a snapshot of the port counters.
func (p *Port) Stats() Stats {
	return Stats{
		RxBytes:   p.stats.rxBytes.Load(),
		RxDropped: p.stats.rxDropped.Load(),
		TxBytes:   p.stats.txBytes.Load(),
		Timeouts:  p.stats.timeouts.Load(),
	}
}
