//go:build linux

package uartring

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// ttyLink is a Linux serial device in raw mode with a self-pipe so that a
// blocked read or write can be woken by Close.
type ttyLink struct {
	fd    int
	file  *os.File
	pipeR int // self-pipe read fd
	pipeW int // self-pipe write fd
}

// OpenTTY opens a Linux serial device in raw, low-latency mode and attaches a
// new Port to it. The Port is initialized and receiving when OpenTTY returns.
func OpenTTY(cfg Config) (*Device, error) {
	cfg = cfg.withDefaults()
	port, err := New(cfg)
	if err != nil {
		return nil, err
	}
	l, err := openTTY(cfg)
	if err != nil {
		cfg.Logger.Error("open failed", "component", string(ComponentDevice), "device", cfg.Device, "err", err)
		return nil, err
	}
	return newDevice(cfg.Device, port, l), nil
}

func openTTY(cfg Config) (*ttyLink, error) {
	fd, err := syscall.Open(cfg.Device, syscall.O_RDWR|syscall.O_NOCTTY|syscall.O_NONBLOCK, 0666)
	if err != nil {
		return nil, fmt.Errorf("open failed: %w", err)
	}

	termios, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("get termios: %w", err)
	}

	// Raw mode
	termios.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	termios.Oflag &^= unix.OPOST
	termios.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	termios.Cflag &^= unix.CSIZE | unix.PARENB
	termios.Cflag |= unix.CS8 | unix.CREAD | unix.CLOCAL

	baud, err := baudToUnix(cfg.BaudRate)
	if err != nil {
		syscall.Close(fd)
		return nil, err
	}
	termios.Cflag &^= unix.CBAUD
	termios.Cflag |= baud

	// VMIN=1, VTIME=0: a read returns as soon as one byte is there.
	termios.Cc[unix.VMIN] = 1
	termios.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, termios); err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("set termios: %w", err)
	}

	// Back to blocking mode now that config is done; poll guards reads.
	if err := syscall.SetNonblock(fd, false); err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("set blocking: %w", err)
	}

	pipeFds := make([]int, 2)
	if err := unix.Pipe(pipeFds); err != nil {
		syscall.Close(fd)
		return nil, fmt.Errorf("pipe: %w", err)
	}

	return &ttyLink{
		fd:    fd,
		file:  os.NewFile(uintptr(fd), cfg.Device),
		pipeR: pipeFds[0],
		pipeW: pipeFds[1],
	}, nil
}

func (l *ttyLink) read(p []byte) (int, error) {
	pfd := []unix.PollFd{
		{Fd: int32(l.fd), Events: unix.POLLIN},
		{Fd: int32(l.pipeR), Events: unix.POLLIN},
	}
	if _, err := unix.Poll(pfd, -1); err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, fmt.Errorf("poll: %w", err)
	}
	// The wake byte stays in the pipe so write sees it too.
	if pfd[1].Revents&unix.POLLIN != 0 {
		return 0, ErrClosed
	}
	if pfd[0].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0 {
		return l.file.Read(p)
	}
	return 0, nil
}

// write hands p to the tty one byte per POLLOUT, so a peer that stops
// reading leaves it parked in poll where wake can reach it.
func (l *ttyLink) write(p []byte) (int, error) {
	pfd := []unix.PollFd{
		{Fd: int32(l.fd), Events: unix.POLLOUT},
		{Fd: int32(l.pipeR), Events: unix.POLLIN},
	}
	n := 0
	for n < len(p) {
		pfd[0].Revents, pfd[1].Revents = 0, 0
		if _, err := unix.Poll(pfd, -1); err != nil {
			if err == unix.EINTR {
				continue
			}
			return n, fmt.Errorf("poll: %w", err)
		}
		if pfd[1].Revents&unix.POLLIN != 0 {
			return n, ErrClosed
		}
		if pfd[0].Revents&(unix.POLLHUP|unix.POLLERR) != 0 {
			return n, fmt.Errorf("write %s: %w", l.file.Name(), unix.EIO)
		}
		if pfd[0].Revents&unix.POLLOUT == 0 {
			continue
		}
		w, err := unix.Write(l.fd, p[n:n+1])
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return n, fmt.Errorf("write %s: %w", l.file.Name(), err)
		}
		n += w
	}
	return n, nil
}

// wake leaves the tty link permanently readable on the pipe side.
func (l *ttyLink) wake() {
	unix.Write(l.pipeW, []byte{1})
}

// close releases the tty and the self-pipe. os.File owns the tty fd.
func (l *ttyLink) close() error {
	err := l.file.Close()
	unix.Close(l.pipeR)
	unix.Close(l.pipeW)
	return err
}

func baudToUnix(baud int) (uint32, error) {
	switch baud {
	case 1200:
		return unix.B1200, nil
	case 2400:
		return unix.B2400, nil
	case 4800:
		return unix.B4800, nil
	case 9600:
		return unix.B9600, nil
	case 19200:
		return unix.B19200, nil
	case 38400:
		return unix.B38400, nil
	case 57600:
		return unix.B57600, nil
	case 115200:
		return unix.B115200, nil
	case 230400:
		return unix.B230400, nil
	case 460800:
		return unix.B460800, nil
	case 921600:
		return unix.B921600, nil
	default:
		return 0, fmt.Errorf("unsupported baud rate %d: %w", baud, ErrInvalidArgument)
	}
}
