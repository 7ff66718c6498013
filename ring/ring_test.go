package ring

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_RejectsTinySize(t *testing.T) {
	for _, size := range []int{-1, 0, 1} {
		_, err := New(size)
		require.ErrorIs(t, err, ErrSize, "size %d", size)
	}

	b, err := New(2)
	require.NoError(t, err)
	require.Equal(t, 2, b.Size())
	require.Equal(t, 1, b.Free())
}

func TestPutGet_FIFOAndUsed(t *testing.T) {
	b, err := New(8)
	require.NoError(t, err)
	p, c := b.Producer(), b.Consumer()

	// Interleave pushes and pops across several wraparounds.
	var next, want byte
	pending := 0
	for round := 0; round < 20; round++ {
		for i := 0; i < 5; i++ {
			require.True(t, p.Put(next))
			next++
			pending++
			require.Equal(t, pending, b.Used())
		}
		for i := 0; i < 4; i++ {
			v, ok := c.Get()
			require.True(t, ok)
			require.Equal(t, want, v)
			want++
			pending--
			require.Equal(t, pending, c.Used())
		}
		// Keep occupancy bounded below capacity-1.
		for pending > 2 {
			v, ok := c.Get()
			require.True(t, ok)
			require.Equal(t, want, v)
			want++
			pending--
		}
	}
}

func TestPut_FullLeavesStateIntact(t *testing.T) {
	b, err := New(4)
	require.NoError(t, err)
	p, c := b.Producer(), b.Consumer()

	require.True(t, p.Put('a'))
	require.True(t, p.Put('b'))
	require.True(t, p.Put('c'))
	require.True(t, p.Full())

	for i := 0; i < 3; i++ {
		require.False(t, p.Put('x'))
		require.Equal(t, 3, b.Used())
		require.Equal(t, 0, b.Free())
	}

	for _, want := range []byte("abc") {
		v, ok := c.Get()
		require.True(t, ok)
		require.Equal(t, want, v)
	}
	require.True(t, c.Empty())
}

func TestGetPeekByte_Empty(t *testing.T) {
	b, err := New(4)
	require.NoError(t, err)
	c := b.Consumer()

	_, ok := c.Get()
	require.False(t, ok)
	_, ok = c.PeekByte()
	require.False(t, ok)

	require.True(t, b.Producer().Put('z'))
	v, ok := c.PeekByte()
	require.True(t, ok)
	require.Equal(t, byte('z'), v)
	require.Equal(t, 1, c.Used(), "PeekByte must not consume")
}

func TestClear(t *testing.T) {
	b, err := New(4)
	require.NoError(t, err)
	p := b.Producer()
	p.Put(1)
	p.Put(2)

	var mu sync.Mutex
	b.Clear(&mu)

	require.Equal(t, 0, b.Used())
	require.Equal(t, []byte{0, 0, 0, 0}, b.data)
	require.True(t, mu.TryLock(), "Clear must release the critical section")
}

// A producer goroutine fills the ring while the consumer drains it; every
// byte must arrive once and in order.
func TestSPSC_Concurrent(t *testing.T) {
	b, err := New(16)
	require.NoError(t, err)
	p, c := b.Producer(), b.Consumer()

	const total = 20000
	go func() {
		for i := 0; i < total; {
			if p.Put(byte(i)) {
				i++
			}
		}
	}()

	for i := 0; i < total; {
		v, ok := c.Get()
		if !ok {
			continue
		}
		require.Equal(t, byte(i), v)
		i++
	}
}
