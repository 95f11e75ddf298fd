package device

import (
	"fmt"
	"strconv"

	"github.com/lumilab/go-temika/logger"
	"github.com/lumilab/go-temika/temika"
)

// IlluminationConfig carries the LED driver parameters.
type IlluminationConfig struct {
	// Type selects the concrete illumination implementation.
	Type IlluminationType

	// Name is the instrument device identifier wrapping illumination command
	// fragments.
	Name string

	// Serial configures the port of a vendor-native LED driver; unused by the
	// shared-protocol variant.
	Serial SerialConfig
}

// TemikaIllumination switches the LED channels through the shared instrument
// channel. All commands are fire-and-forget.
type TemikaIllumination struct {
	conn   *temika.Conn
	logger logger.Logger
	cfg    IlluminationConfig
}

var _ Illumination = (*TemikaIllumination)(nil)

// NewTemikaIllumination creates an illumination controller on the given
// session.
func NewTemikaIllumination(cfg IlluminationConfig, conn *temika.Conn) *TemikaIllumination {
	return &TemikaIllumination{
		conn:   conn,
		logger: conn.GetLogger(),
		cfg:    cfg,
	}
}

// bitmaskToHex converts a binary-digit bitmask string into the zero-padded
// two-digit hexadecimal literal the instrument expects, e.g. "00100000"
// becomes "0x20".
func bitmaskToHex(bitmask string) (string, error) {
	num, err := strconv.ParseUint(bitmask, 2, 64)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidBitmask, bitmask)
	}

	return fmt.Sprintf("0x%02x", num), nil
}

// Setup sets the intensity of one LED channel.
func (i *TemikaIllumination) Setup(channel int, intensity float64) error {
	cmd := fmt.Sprintf(`<%s><illumination><value number="%d">%g</value></illumination></%s>`,
		i.cfg.Name, channel, intensity, i.cfg.Name)

	if err := i.conn.Send(cmd); err != nil {
		return err
	}

	i.logger.Info("illumination configured", "channel", channel, "intensity", intensity)

	return nil
}

// Enable switches channels on according to the bitmask.
func (i *TemikaIllumination) Enable(bitmask string) error {
	hexStr, err := bitmaskToHex(bitmask)
	if err != nil {
		return err
	}

	cmd := fmt.Sprintf("<%s><illumination><enable>%s</enable></illumination></%s>",
		i.cfg.Name, hexStr, i.cfg.Name)

	return i.conn.Send(cmd)
}
