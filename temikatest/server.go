// Package temikatest provides an in-process fake of the Temika
// instrument-control server for tests and for the temika-mock binary.
//
// The fake speaks the real wire shape: an unframed stream of XML-like tag
// fragments in, literal token replies out. It tracks the last commanded
// absolute position per stepper axis, replies "Done" to wait_moving_end and
// a "status <pos>" line to status queries, and exposes knobs for reply
// delay, chunked writes, junk prefixes, and one-shot fault injection.
package temikatest

import (
	"errors"
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

// cmdRe matches the command fragments the fake understands. Alternatives are
// tried at the earliest position in the accumulated stream; incomplete
// fragments at the tail stay buffered until more bytes arrive.
var cmdRe = regexp.MustCompile(`<temika>` +
	`|<stepper axis="([a-z])">` +
	`|<move_absolute>([-+0-9.eE]+) ([-+0-9.eE]+)</move_absolute>` +
	`|<wait_moving_end></wait_moving_end>` +
	`|<status></status>` +
	`|<reset></reset>`)

// Server is a fake instrument server listening on a loopback TCP port.
type Server struct {
	ln net.Listener

	mu          sync.Mutex
	replyDelay  time.Duration
	chunkSize   int
	junkPrefix  string
	faultNext   bool
	statusReply string
	lastConn    net.Conn
	received    strings.Builder

	positions  *xsync.MapOf[string, float64]
	handshakes atomic.Int64
	closed     atomic.Bool
	wg         sync.WaitGroup
}

// Start launches a fake server on an ephemeral loopback port.
func Start() (*Server, error) {
	return StartAddr("127.0.0.1:0")
}

// StartAddr launches a fake server on the given TCP address.
func StartAddr(addr string) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	s := &Server{
		ln:        ln,
		positions: xsync.NewMapOf[string, float64](),
	}

	s.wg.Add(1)
	go s.acceptLoop()

	return s, nil
}

// Host returns the IP the server listens on.
func (s *Server) Host() string {
	return s.ln.Addr().(*net.TCPAddr).IP.String()
}

// Port returns the TCP port the server listens on.
func (s *Server) Port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

// Close stops the listener and closes all client connections.
func (s *Server) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	_ = s.ln.Close()

	s.mu.Lock()
	if s.lastConn != nil {
		_ = s.lastConn.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// Position returns the last commanded absolute position for the axis.
func (s *Server) Position(axis string) float64 {
	pos, _ := s.positions.Load(axis)
	return pos
}

// SetPosition seeds the stored position for the axis.
func (s *Server) SetPosition(axis string, pos float64) {
	s.positions.Store(axis, pos)
}

// HandshakeCount returns the number of handshake fragments received across
// all client connections.
func (s *Server) HandshakeCount() int64 {
	return s.handshakes.Load()
}

// Received returns everything received from clients so far.
func (s *Server) Received() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.received.String()
}

// SetReplyDelay delays every reply by d.
func (s *Server) SetReplyDelay(d time.Duration) {
	s.mu.Lock()
	s.replyDelay = d
	s.mu.Unlock()
}

// SetChunkSize splits every reply into writes of at most n bytes, with a
// short pause between writes. Zero restores single-write replies.
func (s *Server) SetChunkSize(n int) {
	s.mu.Lock()
	s.chunkSize = n
	s.mu.Unlock()
}

// SetJunkPrefix prepends the given bytes to every reply.
func (s *Server) SetJunkPrefix(prefix string) {
	s.mu.Lock()
	s.junkPrefix = prefix
	s.mu.Unlock()
}

// SetStatusReply overrides the reply to status queries. An empty string
// restores the default "status <pos>" line.
func (s *Server) SetStatusReply(reply string) {
	s.mu.Lock()
	s.statusReply = reply
	s.mu.Unlock()
}

// InjectFault makes the next reply an instrument fault line.
func (s *Server) InjectFault() {
	s.mu.Lock()
	s.faultNext = true
	s.mu.Unlock()
}

// SendRaw writes bytes to the most recent client connection outside of any
// command/reply exchange, simulating stale unread reply data.
func (s *Server) SendRaw(text string) error {
	s.mu.Lock()
	conn := s.lastConn
	s.mu.Unlock()

	if conn == nil {
		return errors.New("no client connected")
	}
	_, err := conn.Write([]byte(text))

	return err
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}

		s.mu.Lock()
		s.lastConn = conn
		s.mu.Unlock()

		s.wg.Add(1)
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	buf := make([]byte, 4096)
	var acc string
	var axis string

	for {
		n, err := conn.Read(buf)
		if n > 0 {
			chunk := string(buf[:n])

			s.mu.Lock()
			s.received.WriteString(chunk)
			s.mu.Unlock()

			acc += chunk
			acc, axis = s.process(conn, acc, axis)
		}
		if err != nil {
			return
		}
	}
}

// process consumes every complete command fragment in acc and returns the
// unconsumed remainder along with the currently scoped stepper axis.
func (s *Server) process(conn net.Conn, acc, axis string) (string, string) {
	for {
		loc := cmdRe.FindStringSubmatchIndex(acc)
		if loc == nil {
			return acc, axis
		}

		match := acc[loc[0]:loc[1]]
		switch {
		case match == "<temika>":
			s.handshakes.Add(1)

		case strings.HasPrefix(match, "<stepper"):
			axis = acc[loc[2]:loc[3]]

		case strings.HasPrefix(match, "<move_absolute>"):
			if pos, err := strconv.ParseFloat(acc[loc[4]:loc[5]], 64); err == nil {
				s.positions.Store(axis, pos)
			}

		case match == "<wait_moving_end></wait_moving_end>":
			s.reply(conn, "Done\n")

		case match == "<status></status>":
			s.mu.Lock()
			override := s.statusReply
			s.mu.Unlock()

			if override != "" {
				s.reply(conn, override)
			} else {
				pos, _ := s.positions.Load(axis)
				s.reply(conn, fmt.Sprintf("stepper %s status %g moving 0\n", axis, pos))
			}

		case match == "<reset></reset>":
			s.positions.Store(axis, 0)
		}

		acc = acc[loc[1]:]
	}
}

func (s *Server) reply(conn net.Conn, text string) {
	s.mu.Lock()
	delay := s.replyDelay
	chunk := s.chunkSize
	junk := s.junkPrefix
	fault := s.faultNext
	s.faultNext = false
	s.mu.Unlock()

	if fault {
		text = "ERROR interlock tripped\n"
	}
	full := junk + text

	if delay > 0 {
		time.Sleep(delay)
	}

	if chunk <= 0 {
		_, _ = conn.Write([]byte(full))
		return
	}

	for i := 0; i < len(full); i += chunk {
		end := i + chunk
		if end > len(full) {
			end = len(full)
		}
		_, _ = conn.Write([]byte(full[i:end]))
		time.Sleep(time.Millisecond)
	}
}
