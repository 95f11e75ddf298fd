package device

// Axis identifies a stepper axis of the rig.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
	AxisZ Axis = "z"
	AxisA Axis = "a"
)

// Speed selects one of the configured stage speed presets.
type Speed string

const (
	// SpeedNormal moves at the configured normal stage speed.
	SpeedNormal Speed = "normal"
	// SpeedMax moves at the configured maximum stage speed.
	SpeedMax Speed = "max"
)

// Stage moves the sample in the plane and reports absolute positions in
// experiment coordinates.
type Stage interface {
	// Move drives the axis to the absolute position (experiment units) at the
	// given speed preset and blocks until the motion completes.
	Move(axis Axis, position float64, speed Speed) error
	// Position queries the current absolute position of the axis in
	// experiment units.
	Position(axis Axis) (float64, error)
	// Reset re-homes the axis.
	Reset(axis Axis) error
}

// Focus drives the objective along z and controls hardware autofocus.
type Focus interface {
	// MoveZ drives the objective to the absolute z position and blocks until
	// the motion completes.
	MoveZ(position float64) error
	// PositionZ queries the current z position.
	PositionZ() (float64, error)
	// Autofocus enables or disables the hardware autofocus lock.
	Autofocus(enable bool) error
}

// Illumination configures and switches the LED channels.
type Illumination interface {
	// Setup sets the intensity of one LED channel.
	Setup(channel int, intensity float64) error
	// Enable switches channels on according to a binary-digit bitmask string,
	// e.g. "00100000" enables channel 5 only.
	Enable(bitmask string) error
}

// Camera controls image acquisition.
type Camera interface {
	// SetShutterSpeed sets the exposure time in microseconds.
	SetShutterSpeed(speed float64) error
	// SetFilename sets the basename recorded frames are saved under.
	SetFilename(name string) error
	// CaptureImage acquires a single software-triggered frame.
	CaptureImage() error
	// StartRecord opens a recording and triggers the first frame.
	StartRecord() error
	// StopRecord closes the recording.
	StopRecord() error
}
