// Package ring implements a fixed-capacity single-producer/single-consumer
// byte ring buffer.
//
// One slot is always left unused so that a full buffer (head+1 == tail) can be
// told apart from an empty one (head == tail) without a separate counter.
// The producer only ever advances head and the consumer only ever advances
// tail; each reads the other's index without writing it. That split is what
// lets Put and Get run lock-free against each other. The Producer and
// Consumer handles make the split explicit.
package ring

import (
	"errors"
	"sync"

	"go.uber.org/atomic"
)

// ErrSize is returned by New for a capacity that cannot hold a single byte.
var ErrSize = errors.New("ring: size must be at least 2")

// Buffer is the shared storage of a ring. Use Producer and Consumer to access
// it from the two sides.
type Buffer struct {
	data []byte
	size uint32
	head atomic.Uint32 // next write slot, owned by the producer
	tail atomic.Uint32 // next read slot, owned by the consumer
}

// New returns an empty ring with backing storage of size bytes. Usable
// capacity is size-1.
func New(size int) (*Buffer, error) {
	if size < 2 || uint64(size) > 1<<31 {
		return nil, ErrSize
	}
	return &Buffer{data: make([]byte, size), size: uint32(size)}, nil
}

// Size returns the backing storage size in bytes.
func (b *Buffer) Size() int { return int(b.size) }

// Used returns how many bytes are stored.
func (b *Buffer) Used() int {
	return int(b.used(b.head.Load(), b.tail.Load()))
}

// Free returns how many more bytes can be stored.
func (b *Buffer) Free() int { return int(b.size) - 1 - b.Used() }

func (b *Buffer) used(head, tail uint32) uint32 {
	return (b.size + head - tail) % b.size
}

// Clear empties the ring and zeroes its storage while holding cs. cs must
// exclude the other side of the ring for the duration, otherwise a Put racing
// with Clear could publish a byte into the cleared buffer.
func (b *Buffer) Clear(cs sync.Locker) {
	cs.Lock()
	defer cs.Unlock()
	b.head.Store(0)
	b.tail.Store(0)
	clear(b.data)
}

// Producer returns the write side of the ring.
func (b *Buffer) Producer() Producer { return Producer{b: b} }

// Consumer returns the read side of the ring.
func (b *Buffer) Consumer() Consumer { return Consumer{b: b} }

// Producer is the write handle of a Buffer. Exactly one execution context may
// hold it.
type Producer struct{ b *Buffer }

// Put stores c. If the buffer is already full, it returns false and leaves the
// buffer untouched.
func (p Producer) Put(c byte) bool {
	h := p.b.head.Load()
	next := (h + 1) % p.b.size
	if next == p.b.tail.Load() {
		return false
	}
	p.b.data[h] = c      // 1) write data
	p.b.head.Store(next) // 2) publish
	return true
}

// Full reports whether Put would fail right now.
func (p Producer) Full() bool {
	return (p.b.head.Load()+1)%p.b.size == p.b.tail.Load()
}

// Used returns how many bytes are stored.
func (p Producer) Used() int { return p.b.Used() }

// Consumer is the read handle of a Buffer. Exactly one execution context may
// hold it.
type Consumer struct{ b *Buffer }

// Get removes and returns the oldest byte. It returns (0, false) when empty.
func (c Consumer) Get() (byte, bool) {
	t := c.b.tail.Load()
	if t == c.b.head.Load() {
		return 0, false
	}
	v := c.b.data[t]                   // 1) read current element
	c.b.tail.Store((t + 1) % c.b.size) // 2) publish consumption
	return v, true
}

// PeekByte returns the oldest byte without removing it.
func (c Consumer) PeekByte() (byte, bool) {
	t := c.b.tail.Load()
	if t == c.b.head.Load() {
		return 0, false
	}
	return c.b.data[t], true
}

// Used returns how many bytes are stored.
func (c Consumer) Used() int { return c.b.Used() }

// Empty reports whether Get would fail right now.
func (c Consumer) Empty() bool { return c.b.tail.Load() == c.b.head.Load() }
