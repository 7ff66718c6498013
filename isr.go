package uartring

// OnByteReceived stores a byte delivered by the receive interrupt. It must be
// called in interrupt context (see irq.Controller.Raise). When the receive
// ring is full the byte is dropped and counted; there is no back-pressure at
// the hardware edge.
func (p *Port) OnByteReceived(c byte) {
	if p.rxIn.Put(c) {
		p.stats.rxBytes.Inc()
		p.stats.overflowing.Store(false)
		return
	}
	p.stats.rxDropped.Inc()
	// Log once per overflow episode rather than once per byte.
	if !p.stats.overflowing.Swap(true) {
		p.isr.Warn("rx overflow, dropping bytes", "used", p.rxIn.Used())
	}
}

// OnTransmitReady services the transmit-ready interrupt. It must be called in
// interrupt context. If a byte is queued it is removed and returned for the
// transmit register. Otherwise the transmit interrupt is disabled and ok is
// false; the next WriteByte enables it again.
func (p *Port) OnTransmitReady() (c byte, ok bool) {
	c, ok = p.txOut.Get()
	if !ok {
		p.ctl.DisableTx()
		return 0, false
	}
	p.stats.txBytes.Inc()
	return c, true
}
