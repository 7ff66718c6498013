// Package irq models a single interrupt context on a host.
//
// Service routines run through Raise. They are serialized with each other and
// excluded by the critical section taken with Lock, the same guarantee a
// microcontroller gives with interrupts masked. Enable bits for the receive and
// transmit interrupt sources are tracked here so the code that plays the
// peripheral knows which routines it may raise.
package irq

import (
	"sync"

	"go.uber.org/atomic"
)

// Controller is one interrupt line with a receive and a transmit source.
// The zero value is not usable; call New.
type Controller struct {
	mask sync.Mutex

	rxEnabled atomic.Bool
	txEnabled atomic.Bool
	txArmed   chan struct{} // coalesced EnableTx notifications
}

// New returns a controller with both sources disabled.
func New() *Controller {
	return &Controller{txArmed: make(chan struct{}, 1)}
}

// Lock enters the critical section. No service routine runs until Unlock.
func (c *Controller) Lock() { c.mask.Lock() }

// Unlock leaves the critical section.
func (c *Controller) Unlock() { c.mask.Unlock() }

// Raise runs isr in interrupt context.
func (c *Controller) Raise(isr func()) {
	c.mask.Lock()
	defer c.mask.Unlock()
	isr()
}

// EnableRx unmasks the receive source.
func (c *Controller) EnableRx() { c.rxEnabled.Store(true) }

// DisableRx masks the receive source.
func (c *Controller) DisableRx() { c.rxEnabled.Store(false) }

// RxEnabled reports whether received bytes should be delivered.
func (c *Controller) RxEnabled() bool { return c.rxEnabled.Load() }

// EnableTx unmasks the transmit-ready source and wakes whoever services it.
func (c *Controller) EnableTx() {
	c.txEnabled.Store(true)
	select {
	case c.txArmed <- struct{}{}:
	default:
	}
}

// DisableTx masks the transmit-ready source.
func (c *Controller) DisableTx() { c.txEnabled.Store(false) }

// TxEnabled reports whether the transmit-ready routine should be raised.
func (c *Controller) TxEnabled() bool { return c.txEnabled.Load() }

// TxArmed is signalled after EnableTx. The channel is level-coalesced;
// receivers must re-check TxEnabled after waking.
func (c *Controller) TxArmed() <-chan struct{} { return c.txArmed }
