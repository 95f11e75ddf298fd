package temika

import (
	"sync"
	"time"
)

// Fault describes an instrument fault: the fault token appeared in the reply
// stream while a command was awaiting completion. It models a physical safety
// interlock, so the session blocks all further protocol traffic until the
// fault is acknowledged by the host.
type Fault struct {
	// Command is the command whose reply carried the fault token.
	Command string
	// Reply is the reply text accumulated up to and including the fault token.
	Reply string
	// At is the time the fault was observed.
	At time.Time

	ackOnce sync.Once
	ack     chan struct{}
}

func newFault(command, reply string) *Fault {
	return &Fault{
		Command: command,
		Reply:   reply,
		At:      time.Now(),
		ack:     make(chan struct{}),
	}
}

// Acknowledge releases the session blocked on this fault. It is safe to call
// multiple times; only the first call has an effect.
func (f *Fault) Acknowledge() {
	f.ackOnce.Do(func() { close(f.ack) })
}

// Faults returns the channel on which the session publishes instrument
// faults. The host must consume the channel and call Acknowledge on each
// fault; the session performs no further protocol traffic until then.
//
// A GUI may resolve faults with an operator prompt, a CLI with a keypress,
// and a test harness with an immediate Acknowledge. If nothing consumes the
// channel the session blocks indefinitely, which is the intended hard-stop
// behavior for an unattended rig.
func (c *Conn) Faults() <-chan *Fault {
	return c.faults
}

// tripFault publishes the fault and blocks until it is acknowledged.
func (c *Conn) tripFault(command, reply string) {
	c.metrics.incFaultCount()

	fault := newFault(command, reply)
	c.logger.Error("instrument fault, waiting for acknowledgement",
		"command", command,
		"reply", reply,
	)

	c.faults <- fault
	<-fault.ack

	c.logger.Info("instrument fault acknowledged",
		"command", command,
		"blocked", time.Since(fault.At),
	)
}
