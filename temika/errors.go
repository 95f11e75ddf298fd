package temika

import "errors"

var (
	// ErrConnConfigNil indicates that a nil ConnectionConfig was provided.
	ErrConnConfigNil = errors.New("connection config is nil")

	// ErrConnClosed indicates that the peer closed the connection while a
	// reply was being awaited.
	ErrConnClosed = errors.New("connection closed by instrument")

	// ErrConnectFailed indicates that the session could not establish a
	// connection to the instrument server after exhausting all attempts.
	// No command has been written when this error is returned.
	ErrConnectFailed = errors.New("connect to instrument failed")

	// ErrReplyTimeout indicates that the wait token was not observed within
	// the configured reply timeout. The partial reply accumulated so far is
	// returned alongside this error.
	ErrReplyTimeout = errors.New("reply timeout")

	// ErrInstrumentFault indicates that the fault token appeared in the reply
	// stream. It is returned only after the fault has been acknowledged
	// through the fault gate.
	ErrInstrumentFault = errors.New("instrument fault")
)
