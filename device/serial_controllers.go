package device

import (
	"fmt"

	"github.com/lumilab/go-temika/logger"
)

// The vendor-native controllers talk to their hardware over a dedicated
// serial port instead of the shared instrument channel. The transport is
// wired; the motion and illumination verbs themselves are not implemented
// for these vendors and report ErrNotImplemented rather than silently
// succeeding.

// OlympusStage is the vendor-native serial stage.
type OlympusStage struct {
	serialDevice
}

var _ Stage = (*OlympusStage)(nil)

// NewOlympusStage creates a serial stage controller. The port is opened by
// Connect, not here.
func NewOlympusStage(cfg SerialConfig, log logger.Logger) *OlympusStage {
	cfg.applyDefaults()

	return &OlympusStage{serialDevice{cfg: cfg, logger: log}}
}

// Connect opens the serial port.
func (s *OlympusStage) Connect() error { return s.connect() }

// Close releases the serial port.
func (s *OlympusStage) Close() error { return s.close() }

func (s *OlympusStage) Move(axis Axis, position float64, speed Speed) error {
	return fmt.Errorf("%w: olympus stage move", ErrNotImplemented)
}

func (s *OlympusStage) Position(axis Axis) (float64, error) {
	return 0, fmt.Errorf("%w: olympus stage position", ErrNotImplemented)
}

func (s *OlympusStage) Reset(axis Axis) error {
	return fmt.Errorf("%w: olympus stage reset", ErrNotImplemented)
}

// OlympusX81Focus is the vendor-native serial focus drive.
type OlympusX81Focus struct {
	serialDevice
}

var _ Focus = (*OlympusX81Focus)(nil)

// NewOlympusX81Focus creates a serial focus controller. The port is opened by
// Connect, not here.
func NewOlympusX81Focus(cfg SerialConfig, log logger.Logger) *OlympusX81Focus {
	cfg.applyDefaults()

	return &OlympusX81Focus{serialDevice{cfg: cfg, logger: log}}
}

// Connect opens the serial port.
func (f *OlympusX81Focus) Connect() error { return f.connect() }

// Close releases the serial port.
func (f *OlympusX81Focus) Close() error { return f.close() }

func (f *OlympusX81Focus) MoveZ(position float64) error {
	return fmt.Errorf("%w: olympus x81 focus move", ErrNotImplemented)
}

func (f *OlympusX81Focus) PositionZ() (float64, error) {
	return 0, fmt.Errorf("%w: olympus x81 focus position", ErrNotImplemented)
}

func (f *OlympusX81Focus) Autofocus(enable bool) error {
	return fmt.Errorf("%w: olympus x81 autofocus", ErrNotImplemented)
}

// ThorLabsIllumination is the vendor-native serial LED driver.
type ThorLabsIllumination struct {
	serialDevice
}

var _ Illumination = (*ThorLabsIllumination)(nil)

// NewThorLabsIllumination creates a serial LED driver controller. The port is
// opened by Connect, not here.
func NewThorLabsIllumination(cfg SerialConfig, log logger.Logger) *ThorLabsIllumination {
	cfg.applyDefaults()

	return &ThorLabsIllumination{serialDevice{cfg: cfg, logger: log}}
}

// Connect opens the serial port.
func (i *ThorLabsIllumination) Connect() error { return i.connect() }

// Close releases the serial port.
func (i *ThorLabsIllumination) Close() error { return i.close() }

func (i *ThorLabsIllumination) Setup(channel int, intensity float64) error {
	return fmt.Errorf("%w: thorlabs illumination setup", ErrNotImplemented)
}

func (i *ThorLabsIllumination) Enable(bitmask string) error {
	return fmt.Errorf("%w: thorlabs illumination enable", ErrNotImplemented)
}
