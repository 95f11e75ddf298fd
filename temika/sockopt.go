//go:build !linux

package temika

import (
	"net"
	"time"
)

// setSockOpts applies the instrument channel socket options through the
// portable net.TCPConn interface. The keepalive probe count is not settable
// here; the platform default applies.
func setSockOpts(conn *net.TCPConn, bufferSize int) error {
	if err := conn.SetNoDelay(true); err != nil {
		return err
	}

	if err := conn.SetKeepAlive(true); err != nil {
		return err
	}

	if err := conn.SetKeepAlivePeriod(keepaliveIntervalSec * time.Second); err != nil {
		return err
	}

	if err := conn.SetReadBuffer(bufferSize); err != nil {
		return err
	}

	return conn.SetWriteBuffer(bufferSize)
}
