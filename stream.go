package uartring

import (
	"bytes"
	"time"

	"github.com/luhtfiimanal/go-uart-ring/match"
	"github.com/luhtfiimanal/go-uart-ring/tick"
)

// WaitForString consumes received bytes until pattern has arrived. The
// pattern itself is consumed too.
//
// timeout bounds the time without progress: the deadline starts over after
// every byte that leaves part of the pattern matched, so a slow sender that
// keeps advancing the match is not cut off. Bytes that do not match do not
// extend it.
func (p *Port) WaitForString(pattern []byte, timeout time.Duration) error {
	if len(pattern) == 0 {
		return ErrInvalidArgument
	}
	ms := tick.Millis(timeout)
	m := match.NewMatcher(pattern)
	t := tick.Start(p.clock)

	for {
		if !p.awaitData(&t, ms) {
			return p.timedOut(timeoutError("wait for", pattern))
		}
		c, ok := p.rxOut.Get()
		if !ok {
			continue
		}
		if m.Feed(c) {
			return nil
		}
		if m.Pos() > 0 {
			t.Restart()
		}
	}
}

// CopyUntil consumes received bytes into dst until pattern has arrived, and
// returns how many bytes were copied. The pattern bytes are part of the copy.
//
// At most len(dst)-1 bytes are copied and dst[n] is always set to zero. If dst
// fills up before the pattern completes, CopyUntil returns ErrBufferFull.
// Unlike WaitForString, timeout is a single deadline for the whole call.
func (p *Port) CopyUntil(pattern, dst []byte, timeout time.Duration) (int, error) {
	if len(pattern) == 0 || len(dst) == 0 {
		return 0, ErrInvalidArgument
	}
	ms := tick.Millis(timeout)
	m := match.NewMatcher(pattern)
	t := tick.Start(p.clock)

	n := 0
	for n < len(dst)-1 {
		if !p.awaitData(&t, ms) {
			dst[n] = 0
			return n, p.timedOut(timeoutError("copy until", pattern))
		}
		c, ok := p.rxOut.Get()
		if !ok {
			continue
		}
		dst[n] = c
		n++
		if m.Feed(c) {
			dst[n] = 0
			return n, nil
		}
	}
	dst[n] = 0
	return n, ErrBufferFull
}

// ExtractBetween copies into dst the bytes of src that lie between the first
// occurrence of start and the first occurrence of end after it. src is read
// up to its first zero byte, so a buffer filled by CopyUntil can be passed as
// is. At most len(dst)-1 bytes are copied, dst[n] is set to zero, and n is
// returned.
//
// ExtractBetween never waits. A pattern that is empty or longer than what is
// left of src is reported as ErrNotFound.
func ExtractBetween(start, end, src, dst []byte) (int, error) {
	if len(dst) == 0 {
		return 0, ErrInvalidArgument
	}
	if i := bytes.IndexByte(src, 0); i >= 0 {
		src = src[:i]
	}
	between, ok := match.Between(src, start, end)
	if !ok {
		return 0, ErrNotFound
	}
	n := copy(dst[:len(dst)-1], between)
	dst[n] = 0
	return n, nil
}
