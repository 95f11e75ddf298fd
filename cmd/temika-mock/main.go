// temika-mock runs a fake Temika instrument server on a TCP port. It is meant
// for developing and demoing against the command channel without a rig.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lumilab/go-temika/logger"
	"github.com/lumilab/go-temika/temikatest"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:60000", "TCP address to listen on")
	delay := flag.Duration("delay", 0, "artificial delay before every reply")
	chunk := flag.Int("chunk", 0, "split replies into writes of at most this many bytes (0 = single write)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := logger.InfoLevel
	if *debug {
		level = logger.DebugLevel
	}
	log := logger.NewSlog(level, false)

	srv, err := temikatest.StartAddr(*addr)
	if err != nil {
		log.Error("failed to start mock instrument", "addr", *addr, "error", err)
		os.Exit(1)
	}
	defer srv.Close()

	if *delay > 0 {
		srv.SetReplyDelay(*delay)
	}
	if *chunk > 0 {
		srv.SetChunkSize(*chunk)
	}

	log.Info("mock instrument listening",
		"addr", fmt.Sprintf("%s:%d", srv.Host(), srv.Port()),
		"delay", delay.String(),
		"chunk", *chunk,
	)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info("shutting down", "handshakes", srv.HandshakeCount())
	srv.Close()
}
