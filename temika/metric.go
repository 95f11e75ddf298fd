package temika

import (
	"sync/atomic"
)

// ConnectionMetrics contains atomic metrics for an instrument session.
// Metrics can be used as the value of a prometheus CounterFunc or GaugeFunc.
type ConnectionMetrics struct {
	// CommandSendCount indicates the number of commands written to the socket.
	CommandSendCount atomic.Uint64
	// ReplySuccessCount indicates the number of replies that contained the
	// requested wait token.
	ReplySuccessCount atomic.Uint64
	// ReplyTimeoutCount indicates the number of reply waits that elapsed
	// without observing the wait token.
	ReplyTimeoutCount atomic.Uint64

	// ConnectAttemptCount indicates the number of TCP connect attempts.
	ConnectAttemptCount atomic.Uint64
	// ReconnectCount indicates the number of successful reconnects performed
	// inside send paths.
	ReconnectCount atomic.Uint64

	// FaultCount indicates the number of instrument faults observed.
	FaultCount atomic.Uint64
	// DrainedByteCount indicates the number of stale bytes discarded before
	// command writes.
	DrainedByteCount atomic.Uint64
}

func (m *ConnectionMetrics) incCommandSendCount() {
	m.CommandSendCount.Add(1)
}

func (m *ConnectionMetrics) incReplySuccessCount() {
	m.ReplySuccessCount.Add(1)
}

func (m *ConnectionMetrics) incReplyTimeoutCount() {
	m.ReplyTimeoutCount.Add(1)
}

func (m *ConnectionMetrics) incConnectAttemptCount() {
	m.ConnectAttemptCount.Add(1)
}

func (m *ConnectionMetrics) incReconnectCount() {
	m.ReconnectCount.Add(1)
}

func (m *ConnectionMetrics) incFaultCount() {
	m.FaultCount.Add(1)
}

func (m *ConnectionMetrics) addDrainedByteCount(n uint64) {
	m.DrainedByteCount.Add(n)
}
