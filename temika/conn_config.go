package temika

import (
	"errors"
	"time"

	"github.com/lumilab/go-temika/logger"
)

// ConnectionConfig represents the configuration parameters for an instrument
// session.
type ConnectionConfig struct {
	// host specifies the host of the instrument server.
	host string

	// port specifies the TCP port number of the instrument server.
	port int

	// connectTimeout defines the timeout for establishing the TCP connection.
	// It should be between 100 milliseconds and 30 seconds.
	// Defaults to 5 seconds.
	connectTimeout time.Duration

	// replyTimeout defines the overall timeout for a reply wait: if the wait
	// token has not been observed after this duration, the accumulated partial
	// reply is returned. It should be between 1 second and 10 minutes.
	// Defaults to 30 seconds.
	replyTimeout time.Duration

	// pollInterval defines the length of one readability slice of the reply
	// wait loop. It should be between 10 milliseconds and the reply timeout.
	// Defaults to 1 second.
	pollInterval time.Duration

	// bufferSize defines the explicit socket send/receive buffer size in
	// bytes, and the size of the read scratch buffer. It should be between
	// 256 bytes and 1 MiB.
	// Defaults to 8192.
	bufferSize int

	// logger provides a logger instance for session events and errors.
	logger logger.Logger
}

// NewConnectionConfig creates a new instrument session configuration with the
// given host, port number, and optional functional options.
//
// It initializes a ConnectionConfig struct with default values and then
// applies the provided options to customize the configuration.
//
// Returns a pointer to the initialized ConnectionConfig and an error if any
// occurred during the configuration process.
func NewConnectionConfig(host string, port int, opts ...ConnOption) (*ConnectionConfig, error) {
	cfg := &ConnectionConfig{
		connectTimeout: 5 * time.Second,
		replyTimeout:   30 * time.Second,
		pollInterval:   1 * time.Second,
		bufferSize:     8192,
		logger:         logger.GetLogger(),
	}

	if err := withHost(host).apply(cfg); err != nil {
		return cfg, err
	}

	if err := withPort(port).apply(cfg); err != nil {
		return cfg, err
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

// ConnOption represents a functional option for configuring a ConnectionConfig.
type ConnOption interface {
	apply(*ConnectionConfig) error
}

type connOptFunc struct {
	name      string
	applyFunc func(*ConnectionConfig) error
}

func (c *connOptFunc) apply(cfg *ConnectionConfig) error { return c.applyFunc(cfg) }

func newConnOptFunc(name string, f func(*ConnectionConfig) error) *connOptFunc {
	return &connOptFunc{name: name, applyFunc: f}
}

// withHost sets the host of the instrument server.
func withHost(host string) ConnOption {
	return newConnOptFunc("withHost", func(cfg *ConnectionConfig) error {
		if cfg == nil {
			return ErrConnConfigNil
		}

		if host == "" {
			return errors.New("host is empty")
		}
		cfg.host = host

		return nil
	})
}

// withPort sets the TCP port number of the instrument server.
func withPort(port int) ConnOption {
	return newConnOptFunc("withPort", func(cfg *ConnectionConfig) error {
		if cfg == nil {
			return ErrConnConfigNil
		}

		if port < 1 || port > 65535 {
			return errors.New("port is out of range [1, 65535]")
		}
		cfg.port = port

		return nil
	})
}

// WithConnectTimeout sets the timeout for establishing the TCP connection.
// An error is returned if the timeout is outside the valid range
// (0.1-30 seconds) or if the configuration is nil.
//
// The default value is 5 seconds.
func WithConnectTimeout(val time.Duration) ConnOption {
	return newConnOptFunc("WithConnectTimeout", func(cfg *ConnectionConfig) error {
		if cfg == nil {
			return ErrConnConfigNil
		}

		if val < 100*time.Millisecond || val > 30*time.Second {
			return errors.New("connect timeout out of range [0.1, 30]")
		}
		cfg.connectTimeout = val

		return nil
	})
}

// WithReplyTimeout sets the overall timeout for a reply wait.
// An error is returned if the timeout is outside the valid range
// (1-600 seconds) or if the configuration is nil.
//
// The default value is 30 seconds.
func WithReplyTimeout(val time.Duration) ConnOption {
	return newConnOptFunc("WithReplyTimeout", func(cfg *ConnectionConfig) error {
		if cfg == nil {
			return ErrConnConfigNil
		}

		if val < 1*time.Second || val > 600*time.Second {
			return errors.New("reply timeout out of range [1, 600]")
		}
		cfg.replyTimeout = val

		return nil
	})
}

// WithPollInterval sets the length of one readability slice of the reply wait
// loop. The reply accumulator is inspected for the wait and fault tokens after
// every slice, so a shorter interval detects peer closes faster at the cost of
// more read calls.
// An error is returned if the interval is outside the valid range
// (10 milliseconds - 10 seconds) or if the configuration is nil.
//
// The default value is 1 second.
func WithPollInterval(val time.Duration) ConnOption {
	return newConnOptFunc("WithPollInterval", func(cfg *ConnectionConfig) error {
		if cfg == nil {
			return ErrConnConfigNil
		}

		if val < 10*time.Millisecond || val > 10*time.Second {
			return errors.New("poll interval out of range [0.01, 10]")
		}
		cfg.pollInterval = val

		return nil
	})
}

// WithBufferSize sets the explicit socket send/receive buffer size in bytes.
// An error is returned if the size is outside the valid range
// (256 bytes - 1 MiB) or if the configuration is nil.
//
// The default value is 8192.
func WithBufferSize(size int) ConnOption {
	return newConnOptFunc("WithBufferSize", func(cfg *ConnectionConfig) error {
		if cfg == nil {
			return ErrConnConfigNil
		}

		if size < 256 || size > 1<<20 {
			return errors.New("buffer size out of range [256, 1048576]")
		}
		cfg.bufferSize = size

		return nil
	})
}

// WithLogger sets the logger for the instrument session.
// An error is returned if the configuration is nil.
//
// The default logger is the global logger instance.
func WithLogger(l logger.Logger) ConnOption {
	return newConnOptFunc("WithLogger", func(cfg *ConnectionConfig) error {
		if cfg == nil {
			return ErrConnConfigNil
		}

		cfg.logger = l

		return nil
	})
}
