// Package temika implements the persistent command channel to the Temika
// instrument-control server that drives the microscopy/annealing rig.
//
// The protocol is raw TCP with no length prefixing or framing header. On
// connect the session sends a fixed handshake fragment that opens an implicit
// outer element; the scope is not closed until the connection itself closes.
// Commands are XML-like tag text fragments written as raw bytes, and command
// completion is inferred purely from literal substrings appearing in the
// streamed reply ("Done", "status ", "ERROR").
//
// Key behaviors:
//   - Single connection: one Conn owns one TCP connection; all traffic is
//     serialized because the protocol has no request IDs.
//   - Lazy reconnect: an absent or failed connection is re-established inside
//     the send paths, up to three sequential attempts.
//   - Drain: stale bytes queued in the receive buffer are discarded before
//     every command write.
//   - Fail-soft: connection errors, timeouts, and malformed replies degrade
//     to sentinel errors plus log entries, never panics. A single failed read
//     must not abort a multi-hour unattended run.
//   - Fault gate: the literal "ERROR" in a reply stream blocks the session
//     until a human acknowledges through the Faults channel, modeling a
//     physical safety interlock.
//
// Usage:
//
//	cfg, err := temika.NewConnectionConfig("127.0.0.1", 60000,
//		temika.WithConnectTimeout(5*time.Second),
//		temika.WithReplyTimeout(30*time.Second),
//	)
//	// ... handle error ...
//	conn, err := temika.NewConn(cfg)
//	// ... handle error ...
//	defer conn.Close()
//
//	go func() {
//		for fault := range conn.Faults() {
//			// prompt the operator, then:
//			fault.Acknowledge()
//		}
//	}()
//
//	reply, err := conn.SendAndWait(`<stage><stepper axis="x"><status></status></stepper></stage>`, temika.TokenStatus)
//	pos, ok := temika.ParseStatus(reply)
//
// Device-level operations (stage moves, focus, illumination, camera) live in
// the device package and are built on top of Conn.
package temika
