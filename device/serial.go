package device

import (
	"strings"
	"time"

	"go.bug.st/serial"

	"github.com/lumilab/go-temika/logger"
)

// SerialConfig carries the port parameters of a vendor-native controller.
type SerialConfig struct {
	// Port is the device path, e.g. "/dev/ttyUSB0".
	Port string

	// BaudRate defaults to 9600.
	BaudRate int

	// DataBits defaults to 8.
	DataBits int

	// Parity is "N", "E", or "O". Defaults to "N".
	Parity string

	// StopBits is 1 or 2. Defaults to 1.
	StopBits int

	// ReadTimeout bounds one response read. Defaults to 1 second.
	ReadTimeout time.Duration
}

func (cfg *SerialConfig) applyDefaults() {
	if cfg.BaudRate == 0 {
		cfg.BaudRate = 9600
	}
	if cfg.DataBits == 0 {
		cfg.DataBits = 8
	}
	if cfg.Parity == "" {
		cfg.Parity = "N"
	}
	if cfg.StopBits == 0 {
		cfg.StopBits = 1
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = time.Second
	}
}

func (cfg *SerialConfig) mode() *serial.Mode {
	parity := serial.NoParity
	switch cfg.Parity {
	case "E":
		parity = serial.EvenParity
	case "O":
		parity = serial.OddParity
	}

	stopBits := serial.OneStopBit
	if cfg.StopBits == 2 {
		stopBits = serial.TwoStopBits
	}

	return &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: cfg.DataBits,
		Parity:   parity,
		StopBits: stopBits,
	}
}

// serialDevice is the shared transport of the vendor-native controllers:
// newline-terminated command writes and line-oriented response reads.
type serialDevice struct {
	cfg    SerialConfig
	logger logger.Logger
	port   serial.Port
}

// connect opens the configured port. Idempotent.
func (d *serialDevice) connect() error {
	if d.port != nil {
		return nil
	}

	port, err := serial.Open(d.cfg.Port, d.cfg.mode())
	if err != nil {
		d.logger.Error("failed to open serial port", "port", d.cfg.Port, "error", err)
		return err
	}

	if err := port.SetReadTimeout(d.cfg.ReadTimeout); err != nil {
		_ = port.Close()
		return err
	}

	d.port = port
	d.logger.Debug("serial port opened", "port", d.cfg.Port, "baudrate", d.cfg.BaudRate)

	return nil
}

func (d *serialDevice) sendCommand(command string) error {
	if d.port == nil {
		return ErrNotConnected
	}

	_, err := d.port.Write([]byte(command + "\n"))

	return err
}

// readResponse reads until a newline or the read timeout and returns the
// trimmed line.
func (d *serialDevice) readResponse() (string, error) {
	if d.port == nil {
		return "", ErrNotConnected
	}

	buf := make([]byte, 256)
	var sb strings.Builder

	for {
		n, err := d.port.Read(buf)
		if err != nil {
			return strings.TrimSpace(sb.String()), err
		}
		if n == 0 {
			// read timeout with nothing further to deliver
			break
		}

		sb.Write(buf[:n])
		if strings.ContainsRune(string(buf[:n]), '\n') {
			break
		}
	}

	return strings.TrimSpace(sb.String()), nil
}

func (d *serialDevice) close() error {
	if d.port == nil {
		return nil
	}

	err := d.port.Close()
	d.port = nil

	return err
}
