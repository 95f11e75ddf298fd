package device

import (
	"fmt"
	"strings"

	"github.com/lumilab/go-temika/logger"
	"github.com/lumilab/go-temika/temika"
)

// CameraConfig carries the camera parameters.
type CameraConfig struct {
	// Type selects the concrete camera implementation.
	Type CameraType

	// Name is the full GenICam camera identifier, e.g.
	// "Genicam FLIR Blackfly S BFS-U3-70S7M 0159F410".
	Name string
}

// TemikaCamera controls a GenICam camera through the shared instrument
// channel. All commands are fire-and-forget.
type TemikaCamera struct {
	conn   *temika.Conn
	logger logger.Logger
	cfg    CameraConfig
}

var _ Camera = (*TemikaCamera)(nil)

// NewTemikaCamera creates a camera controller on the given session and
// applies the permanent acquisition settings: software-triggered single
// frames at an enabled fixed frame rate.
func NewTemikaCamera(cfg CameraConfig, conn *temika.Conn) (*TemikaCamera, error) {
	c := &TemikaCamera{
		conn:   conn,
		logger: conn.GetLogger(),
		cfg:    cfg,
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<camera name="%s">`, cfg.Name)
	b.WriteString("<genicam>")
	b.WriteString(`<boolean feature="AcquisitionFrameRateEnable">ON</boolean>`)
	b.WriteString(`<enumeration feature="AcquisitionMode">SingleFrame</enumeration>`)
	b.WriteString(`<enumeration feature="TriggerMode">On</enumeration>`)
	b.WriteString(`<enumeration feature="TriggerSource">Software</enumeration>`)
	b.WriteString(`<command feature="TriggerSoftware"/>`)
	b.WriteString("</genicam>")
	b.WriteString("</camera>")

	if err := c.conn.Send(b.String()); err != nil {
		return nil, err
	}

	c.logger.Info("camera controller initialized", "camera", cfg.Name)

	return c, nil
}

// SetShutterSpeed sets the exposure time in microseconds.
func (c *TemikaCamera) SetShutterSpeed(speed float64) error {
	cmd := fmt.Sprintf(`<camera name="%s"><genicam><float feature="ExposureTime">%g</float></genicam></camera>`,
		c.cfg.Name, speed)

	return c.conn.Send(cmd)
}

// SetFilename sets the basename recorded frames are saved under. The append
// mode NOTHING keeps the name exactly as given.
func (c *TemikaCamera) SetFilename(name string) error {
	cmd := fmt.Sprintf("<save><basename>%s</basename><append>NOTHING</append></save>", name)

	return c.conn.Send(cmd)
}

// CaptureImage acquires a single frame as one composite command:
// record on, software trigger, record off.
func (c *TemikaCamera) CaptureImage() error {
	var b strings.Builder
	fmt.Fprintf(&b, `<camera name="%s">`, c.cfg.Name)
	b.WriteString("<record>ON</record>")
	b.WriteString("<send_trigger></send_trigger>")
	b.WriteString("<record>OFF</record>")
	b.WriteString("</camera>")

	return c.conn.Send(b.String())
}

// StartRecord opens a recording and triggers the first frame.
func (c *TemikaCamera) StartRecord() error {
	var b strings.Builder
	fmt.Fprintf(&b, `<camera name="%s">`, c.cfg.Name)
	b.WriteString("<record>ON</record>")
	b.WriteString("<send_trigger></send_trigger>")
	b.WriteString("</camera>")

	return c.conn.Send(b.String())
}

// StopRecord closes the recording.
func (c *TemikaCamera) StopRecord() error {
	cmd := fmt.Sprintf(`<camera name="%s"><record>OFF</record></camera>`, c.cfg.Name)

	return c.conn.Send(cmd)
}
