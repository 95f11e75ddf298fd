package device

import "errors"

var (
	// ErrUnknownControllerType indicates that a factory received a controller
	// type it has no implementation for. This is a fatal configuration error;
	// the caller must not continue with a nil controller.
	ErrUnknownControllerType = errors.New("unknown controller type")

	// ErrNotImplemented indicates that a vendor-native controller does not
	// implement the requested operation.
	ErrNotImplemented = errors.New("operation not implemented")

	// ErrInvalidBitmask indicates that an illumination bitmask string
	// contained characters other than binary digits.
	ErrInvalidBitmask = errors.New("invalid illumination bitmask")

	// ErrNotConnected indicates that a serial controller was used before its
	// port was opened.
	ErrNotConnected = errors.New("serial port not connected")
)
