//go:build linux

package temika

import (
	"net"

	"golang.org/x/sys/unix"
)

// setSockOpts applies the instrument channel socket options: no-delay,
// keepalive with a 10 s probe interval and 5 probes, and explicit
// send/receive buffer sizes.
func setSockOpts(conn *net.TCPConn, bufferSize int) error {
	if err := conn.SetNoDelay(true); err != nil {
		return err
	}

	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}

	var optErr error
	err = raw.Control(func(fd uintptr) {
		sfd := int(fd)
		for _, opt := range []struct {
			level, name, value int
		}{
			{unix.SOL_SOCKET, unix.SO_KEEPALIVE, 1},
			{unix.IPPROTO_TCP, unix.TCP_KEEPINTVL, keepaliveIntervalSec},
			{unix.IPPROTO_TCP, unix.TCP_KEEPIDLE, keepaliveIntervalSec},
			{unix.IPPROTO_TCP, unix.TCP_KEEPCNT, keepaliveProbeCount},
			{unix.SOL_SOCKET, unix.SO_RCVBUF, bufferSize},
			{unix.SOL_SOCKET, unix.SO_SNDBUF, bufferSize},
		} {
			if err := unix.SetsockoptInt(sfd, opt.level, opt.name, opt.value); err != nil && optErr == nil {
				optErr = err
			}
		}
	})
	if err != nil {
		return err
	}

	return optErr
}
