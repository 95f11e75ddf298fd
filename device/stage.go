package device

import (
	"fmt"
	"strings"

	"github.com/lumilab/go-temika/logger"
	"github.com/lumilab/go-temika/temika"
)

// StageConfig carries the per-rig stage parameters.
type StageConfig struct {
	// Type selects the concrete stage implementation.
	Type StageType

	// Name is the instrument device identifier wrapping stage command
	// fragments, e.g. "microscopeone".
	Name string

	// Scale converts experiment position units to device-native units.
	// Defaults to 1.0.
	Scale float64

	// OriginOffsetX and OriginOffsetY align device-native zero with
	// experiment-native zero. The x offset applies to axis x, the y offset to
	// every other axis.
	OriginOffsetX float64
	OriginOffsetY float64

	// NormalSpeed and MaxSpeed are the stage speed presets in device
	// units per second. Default to 1000 and 10000.
	NormalSpeed float64
	MaxSpeed    float64

	// Serial configures the port of a vendor-native stage; unused by the
	// shared-protocol variant.
	Serial SerialConfig
}

func (cfg *StageConfig) applyDefaults() {
	if cfg.Scale == 0 {
		cfg.Scale = 1.0
	}
	if cfg.NormalSpeed == 0 {
		cfg.NormalSpeed = 1000
	}
	if cfg.MaxSpeed == 0 {
		cfg.MaxSpeed = 10000
	}
}

// TemikaStage drives the stage through the shared instrument channel.
type TemikaStage struct {
	conn   *temika.Conn
	logger logger.Logger
	cfg    StageConfig
}

var _ Stage = (*TemikaStage)(nil)

// NewTemikaStage creates a stage controller on the given session.
func NewTemikaStage(cfg StageConfig, conn *temika.Conn) *TemikaStage {
	cfg.applyDefaults()

	return &TemikaStage{
		conn:   conn,
		logger: conn.GetLogger(),
		cfg:    cfg,
	}
}

// originOffset returns the configured offset for the axis: the x offset for
// axis x, the y offset for every other axis.
func (s *TemikaStage) originOffset(axis Axis) float64 {
	if axis == AxisX {
		return s.cfg.OriginOffsetX
	}
	return s.cfg.OriginOffsetY
}

// Move drives the axis to the absolute position in experiment units and
// blocks until the instrument reports the motion done.
func (s *TemikaStage) Move(axis Axis, position float64, speed Speed) error {
	sp := s.cfg.NormalSpeed
	if speed == SpeedMax {
		sp = s.cfg.MaxSpeed
	}

	pos := position*s.cfg.Scale - s.originOffset(axis)
	if axis == AxisY {
		// the instrument's y axis runs opposite to the experiment convention
		pos = -pos
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<%s>", s.cfg.Name)
	fmt.Fprintf(&b, `<stepper axis="%s">`, axis)
	fmt.Fprintf(&b, "<move_absolute>%g %g</move_absolute>", pos, sp)
	b.WriteString("<wait_moving_end></wait_moving_end>")
	b.WriteString("</stepper>")
	fmt.Fprintf(&b, "</%s>", s.cfg.Name)

	_, err := s.conn.SendAndWait(b.String(), temika.TokenDone)

	return err
}

// Position queries the current absolute position of the axis in experiment
// units. A reply missing the scalar marker degrades to 0.0 with a logged
// error; a transport failure is returned to the caller.
func (s *TemikaStage) Position(axis Axis) (float64, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "<%s>", s.cfg.Name)
	fmt.Fprintf(&b, `<stepper axis="%s">`, axis)
	b.WriteString("<status></status>")
	b.WriteString("</stepper>")
	fmt.Fprintf(&b, "</%s>", s.cfg.Name)

	reply, err := s.conn.SendAndWait(b.String(), temika.TokenStatus)
	if err != nil {
		return 0, err
	}

	pos, ok := temika.ParseStatus(reply)
	if !ok {
		s.logger.Error("no status found in reply, returning 0.0 position",
			"axis", axis,
			"reply", reply,
		)

		return 0, nil
	}

	return pos / s.cfg.Scale, nil
}

// Reset re-homes the axis. Fire-and-forget.
func (s *TemikaStage) Reset(axis Axis) error {
	var b strings.Builder
	fmt.Fprintf(&b, "<%s>", s.cfg.Name)
	fmt.Fprintf(&b, `<stepper axis="%s">`, axis)
	b.WriteString("<reset></reset>")
	b.WriteString("</stepper>")
	fmt.Fprintf(&b, "</%s>", s.cfg.Name)

	return s.conn.Send(b.String())
}
