package device

import (
	"fmt"
	"strings"

	"github.com/lumilab/go-temika/logger"
	"github.com/lumilab/go-temika/temika"
)

// afocusLockParams is the fixed tolerance and timeout of the autofocus
// lock wait, in instrument units.
const afocusLockParams = "0.2 10.3"

// FocusConfig carries the focus drive parameters.
type FocusConfig struct {
	// Type selects the concrete focus implementation.
	Type FocusType

	// Speed is the z motion speed in device units per second.
	// Defaults to 100.
	Speed float64

	// Serial configures the port of a vendor-native focus drive; unused by
	// the shared-protocol variant.
	Serial SerialConfig
}

// TemikaFocus drives the z axis and autofocus through the shared instrument
// channel.
type TemikaFocus struct {
	conn   *temika.Conn
	logger logger.Logger
	cfg    FocusConfig
}

var _ Focus = (*TemikaFocus)(nil)

// NewTemikaFocus creates a focus controller on the given session.
func NewTemikaFocus(cfg FocusConfig, conn *temika.Conn) *TemikaFocus {
	if cfg.Speed == 0 {
		cfg.Speed = 100
	}

	return &TemikaFocus{
		conn:   conn,
		logger: conn.GetLogger(),
		cfg:    cfg,
	}
}

// MoveZ drives the objective to the absolute z position and blocks until the
// instrument reports the motion done.
func (f *TemikaFocus) MoveZ(position float64) error {
	var b strings.Builder
	b.WriteString(`<stepper axis="z">`)
	fmt.Fprintf(&b, "<move_absolute>%g %g</move_absolute>", position, f.cfg.Speed)
	b.WriteString("<wait_moving_end></wait_moving_end>")
	b.WriteString("</stepper>")

	_, err := f.conn.SendAndWait(b.String(), temika.TokenDone)

	return err
}

// PositionZ queries the current z position. A reply missing the scalar marker
// degrades to 0.0 with a logged error.
func (f *TemikaFocus) PositionZ() (float64, error) {
	reply, err := f.conn.SendAndWait(`<stepper axis="z"><status></status></stepper>`, temika.TokenStatus)
	if err != nil {
		return 0, err
	}

	pos, ok := temika.ParseStatus(reply)
	if !ok {
		f.logger.Error("no status found in reply, returning 0.0 z position", "reply", reply)
		return 0, nil
	}

	return pos, nil
}

// Autofocus enables or disables the hardware autofocus. Enabling appends the
// fixed lock-wait fragment so the instrument settles before the next command.
// Fire-and-forget.
func (f *TemikaFocus) Autofocus(enable bool) error {
	state := "OFF"
	if enable {
		state = "ON"
	}

	var b strings.Builder
	b.WriteString("<afocus>")
	fmt.Fprintf(&b, "<enable>%s</enable>", state)
	if enable {
		fmt.Fprintf(&b, "<wait_lock>%s</wait_lock>", afocusLockParams)
	}
	b.WriteString("</afocus>")

	if err := f.conn.Send(b.String()); err != nil {
		return err
	}

	f.logger.Debug("autofocus set", "enable", state)

	return nil
}
