package temika

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lumilab/go-temika/internal/pool"
	"github.com/lumilab/go-temika/logger"
)

const (
	// handshakeOpen opens the outer command scope on connect. The scope stays
	// open until the connection itself closes.
	handshakeOpen  = "<temika>"
	handshakeClose = "</temika>"

	// maxConnectAttempts bounds the sequential reconnect attempts performed
	// inside the send paths before reporting failure to the caller.
	maxConnectAttempts = 3

	keepaliveIntervalSec = 10
	keepaliveProbeCount  = 5

	// drainSlice approximates a non-blocking drain: reads with a deadline this
	// far in the future discard whatever is already queued without noticeably
	// delaying the command write.
	drainSlice = 5 * time.Millisecond
)

// Conn is a persistent session to the instrument server. It owns the one TCP
// connection, frames commands, waits for response tokens, and reconnects on
// failure.
//
// A Conn is a long-lived, shared resource: construct it once at the
// application root and inject it into every device controller. The instrument
// protocol carries no correlation IDs, so all traffic through one session is
// serialized internally; at most one reply wait is ever outstanding.
//
// Conn never panics on protocol failures. Connection errors, timeouts, and
// peer closes degrade to sentinel errors plus a log entry, deferring the
// retry/abort decision to the orchestration layer.
type Conn struct {
	cfg    *ConnectionConfig
	logger logger.Logger

	// mu serializes all protocol traffic and guards conn.
	mu    sync.Mutex
	conn  net.Conn
	state atomic.Uint32

	faults  chan *Fault
	metrics ConnectionMetrics
}

// NewConn creates a new instrument session with the given configuration.
// The session connects lazily: the first Send, SendAndWait, or an explicit
// Connect call establishes the TCP connection.
func NewConn(cfg *ConnectionConfig) (*Conn, error) {
	if cfg == nil {
		return nil, ErrConnConfigNil
	}

	return &Conn{
		cfg:    cfg,
		logger: cfg.logger,
		faults: make(chan *Fault),
	}, nil
}

// State returns the externally observable connection state.
func (c *Conn) State() ConnState {
	return ConnState(c.state.Load())
}

// GetLogger returns the logger associated with the session.
func (c *Conn) GetLogger() logger.Logger {
	return c.logger
}

// GetMetrics returns the metrics associated with the session.
func (c *Conn) GetMetrics() *ConnectionMetrics {
	return &c.metrics
}

// Connect establishes the TCP connection and sends the handshake that opens
// the outer command scope. It is idempotent: if the session is already
// connected it returns nil immediately without a new handshake.
func (c *Conn) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.connectLocked()
}

func (c *Conn) connectLocked() error {
	if c.conn != nil {
		c.logger.Debug("already connected to instrument server")
		return nil
	}

	c.metrics.incConnectAttemptCount()

	address := net.JoinHostPort(c.cfg.host, strconv.Itoa(c.cfg.port))
	dialer := net.Dialer{Timeout: c.cfg.connectTimeout}

	conn, err := dialer.Dial("tcp", address)
	if err != nil {
		c.logger.Error("failed to connect to instrument server", "address", address, "error", err)
		return err
	}

	if tcpConn, ok := conn.(*net.TCPConn); ok {
		if err := setSockOpts(tcpConn, c.cfg.bufferSize); err != nil {
			c.logger.Warn("failed to set socket options", "error", err)
		}
	}

	if _, err := conn.Write([]byte(handshakeOpen)); err != nil {
		c.logger.Error("failed to send handshake", "address", address, "error", err)
		_ = conn.Close()

		return err
	}

	c.conn = conn
	c.state.Store(uint32(ConnectedState))
	c.logger.Debug("connected to instrument server",
		"address", address,
		"local_addr", conn.LocalAddr().String(),
	)

	return nil
}

// ensureConnectedLocked guarantees a live connection before a command write,
// attempting up to maxConnectAttempts sequential reconnects. It returns
// ErrConnectFailed after exhaustion; no command is sent in that case.
func (c *Conn) ensureConnectedLocked() error {
	if c.conn != nil {
		return nil
	}

	c.logger.Warn("session not connected, attempting to reconnect")

	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		if err := c.connectLocked(); err == nil {
			c.metrics.incReconnectCount()
			c.logger.Info("reconnected to instrument server", "attempt", attempt)

			return nil
		}

		c.logger.Warn("reconnect attempt failed", "attempt", attempt)
	}

	c.logger.Error("failed to reconnect to instrument server", "attempts", maxConnectAttempts)

	return ErrConnectFailed
}

// dropConnLocked closes and forgets the connection handle. The next send
// detects the absence lazily and reconnects.
func (c *Conn) dropConnLocked() {
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.state.Store(uint32(DisconnectedState))
}

// drainLocked performs a best-effort discard of bytes already queued in the
// receive buffer, protecting the next reply wait from a prior command's unread
// reply. Read errors are swallowed and the deadline is restored regardless of
// outcome.
func (c *Conn) drainLocked() {
	if c.conn == nil {
		return
	}

	buf := make([]byte, c.cfg.bufferSize)
	drained := 0

	for {
		_ = c.conn.SetReadDeadline(time.Now().Add(drainSlice))
		n, err := c.conn.Read(buf)
		drained += n
		if err != nil {
			break
		}
	}
	_ = c.conn.SetReadDeadline(time.Time{})

	if drained > 0 {
		c.metrics.addDrainedByteCount(uint64(drained))
		c.logger.Debug("drained stale bytes before send", "bytes", drained)
	}
}

func (c *Conn) writeLocked(command string) error {
	if c.logger.Level() == logger.DebugLevel {
		c.logger.Debug("send command", "command", command)
	}

	_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.replyTimeout))
	if _, err := c.conn.Write([]byte(command)); err != nil {
		c.logger.Error("socket error during send", "command", command, "error", err)
		c.dropConnLocked()

		return err
	}
	_ = c.conn.SetWriteDeadline(time.Time{})

	c.metrics.incCommandSendCount()

	return nil
}

// Send writes a fire-and-forget command and returns without reading a reply.
//
// The session never reads replies to fire-and-forget commands; a fault token
// in such a reply is only ever discarded by the drain preceding the next
// command and cannot trip the fault gate. Commands that must surface faults
// need a wait token (use SendAndWait).
func (c *Conn) Send(command string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureConnectedLocked(); err != nil {
		return err
	}

	c.drainLocked()

	return c.writeLocked(command)
}

// SendAndWait writes a command and blocks until waitFor appears as a
// substring of the accumulated reply, the instrument reports a fault, the
// peer closes the connection, or the reply timeout elapses.
//
// On success the returned text contains waitFor. On timeout or peer close the
// partial reply accumulated so far is returned together with ErrReplyTimeout
// or ErrConnClosed. The session never retries the command itself, only the
// connection; callers retry business operations if they choose.
func (c *Conn) SendAndWait(command, waitFor string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureConnectedLocked(); err != nil {
		return "", err
	}

	c.drainLocked()

	if err := c.writeLocked(command); err != nil {
		return "", err
	}

	return c.waitReplyLocked(command, waitFor)
}

// waitReplyLocked polls readability in pollInterval slices, appending
// whatever arrives to the accumulator, until a terminal token is observed or
// the overall reply timeout elapses.
func (c *Conn) waitReplyLocked(command, waitFor string) (string, error) {
	var acc strings.Builder
	buf := make([]byte, c.cfg.bufferSize)
	started := time.Now()

	deadline := pool.GetTimer(c.cfg.replyTimeout)
	defer pool.PutTimer(deadline)

	for {
		_ = c.conn.SetReadDeadline(time.Now().Add(c.cfg.pollInterval))
		n, err := c.conn.Read(buf)
		if n > 0 {
			acc.Write(buf[:n])
		}
		reply := acc.String()

		// The fault token outranks the wait token: a reply carrying both is
		// still a fault.
		if strings.Contains(reply, TokenFault) {
			_ = c.conn.SetReadDeadline(time.Time{})
			c.tripFault(command, reply)

			return strings.TrimSpace(reply), ErrInstrumentFault
		}

		if strings.Contains(reply, waitFor) {
			_ = c.conn.SetReadDeadline(time.Time{})
			c.metrics.incReplySuccessCount()

			return strings.TrimSpace(reply), nil
		}

		if err != nil {
			var netErr net.Error
			if !errors.As(err, &netErr) || !netErr.Timeout() {
				// read returned no data: peer closed or the socket failed
				c.logger.Error("socket error during reply wait",
					"command", command,
					"error", err,
					"elapsed", time.Since(started),
				)
				c.dropConnLocked()

				return strings.TrimSpace(reply), ErrConnClosed
			}
		}

		select {
		case <-deadline.C:
			_ = c.conn.SetReadDeadline(time.Time{})
			c.metrics.incReplyTimeoutCount()
			c.logger.Warn("reply wait timeout",
				"command", command,
				"waitFor", waitFor,
				"elapsed", time.Since(started),
				"reply", reply,
			)

			return strings.TrimSpace(reply), ErrReplyTimeout
		default:
		}
	}
}

// Close closes the outer command scope best-effort and tears down the TCP
// connection. A closed session reconnects lazily on the next send.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}

	_, _ = c.conn.Write([]byte(handshakeClose))

	err := c.conn.Close()
	c.conn = nil
	c.state.Store(uint32(DisconnectedState))
	c.logger.Debug("instrument session closed")

	return err
}
