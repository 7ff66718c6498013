package tick

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// stepClock advances by step on every read.
type stepClock struct {
	now, step uint32
}

func (c *stepClock) Millis() uint32 {
	v := c.now
	c.now += c.step
	return v
}

func TestExpired_Wraparound(t *testing.T) {
	c := &stepClock{now: math.MaxUint32 - 5, step: 0}
	tm := Start(c)

	c.now = 4 // counter wrapped: 10 ms later
	require.Equal(t, uint32(10), tm.Elapsed())
	require.True(t, tm.Expired(10))
	require.False(t, tm.Expired(11))
}

func TestRestart(t *testing.T) {
	c := &stepClock{}
	tm := Start(c)
	c.now = 100
	require.True(t, tm.Expired(50))

	tm.Restart()
	require.False(t, tm.Expired(50))
	c.now = 150
	require.True(t, tm.Expired(50))
}

func TestPoll(t *testing.T) {
	t.Run("ready first", func(t *testing.T) {
		c := &stepClock{step: 1}
		tm := Start(c)
		require.True(t, Poll(&tm, 0, func() bool { return true }))
	})

	t.Run("times out", func(t *testing.T) {
		c := &stepClock{step: 1}
		tm := Start(c)
		calls := 0
		ok := Poll(&tm, 10, func() bool { calls++; return false })
		require.False(t, ok)
		require.Equal(t, 10, calls)
	})

	t.Run("becomes ready", func(t *testing.T) {
		c := &stepClock{step: 1}
		tm := Start(c)
		calls := 0
		require.True(t, Poll(&tm, 100, func() bool { calls++; return calls == 3 }))
	})

	t.Run("sub-millisecond waits within the tick", func(t *testing.T) {
		c := &stepClock{}
		tm := Start(c)
		calls := 0
		require.True(t, Poll(&tm, Millis(500*time.Microsecond), func() bool { calls++; return calls == 3 }))
		c.step = 1
		require.False(t, Poll(&tm, Millis(500*time.Microsecond), func() bool { return false }))
	})
}

func TestMillis(t *testing.T) {
	require.Equal(t, uint32(0), Millis(-time.Second))
	require.Equal(t, uint32(0), Millis(0))
	require.Equal(t, uint32(1), Millis(time.Microsecond))
	require.Equal(t, uint32(1), Millis(999*time.Microsecond))
	require.Equal(t, uint32(1500), Millis(1500*time.Millisecond))
	require.Equal(t, uint32(math.MaxUint32), Millis(time.Duration(math.MaxInt64)))
}

func TestSystem_Monotonic(t *testing.T) {
	c := System()
	a := c.Millis()
	time.Sleep(5 * time.Millisecond)
	require.GreaterOrEqual(t, c.Millis()-a, uint32(5))
}
