package device

import (
	"fmt"

	"github.com/lumilab/go-temika/temika"
)

// Controller type keys. They mirror the configuration values of the deployed
// rigs, so the string forms are part of the configuration contract.
type (
	StageType        string
	FocusType        string
	IlluminationType string
	CameraType       string
)

const (
	StageTemika  StageType = "Temika"
	StageOlympus StageType = "Olympus"

	FocusTemika     FocusType = "Temika"
	FocusOlympusX81 FocusType = "OlympusX81"

	IlluminationTemika   IlluminationType = "Temika"
	IlluminationThorLabs IlluminationType = "ThorLabs"

	CameraFLIR CameraType = "FLIR"
	CameraIDS  CameraType = "IDS"
)

// NewStage selects a stage implementation from the configured type.
// An unrecognized type is a fatal configuration error.
func NewStage(cfg StageConfig, conn *temika.Conn) (Stage, error) {
	switch cfg.Type {
	case StageTemika:
		return NewTemikaStage(cfg, conn), nil
	case StageOlympus:
		return NewOlympusStage(cfg.Serial, conn.GetLogger()), nil
	default:
		return nil, fmt.Errorf("%w: stage %q", ErrUnknownControllerType, cfg.Type)
	}
}

// NewFocus selects a focus implementation from the configured type.
func NewFocus(cfg FocusConfig, conn *temika.Conn) (Focus, error) {
	switch cfg.Type {
	case FocusTemika:
		return NewTemikaFocus(cfg, conn), nil
	case FocusOlympusX81:
		return NewOlympusX81Focus(cfg.Serial, conn.GetLogger()), nil
	default:
		return nil, fmt.Errorf("%w: focus %q", ErrUnknownControllerType, cfg.Type)
	}
}

// NewIllumination selects an illumination implementation from the configured
// type.
func NewIllumination(cfg IlluminationConfig, conn *temika.Conn) (Illumination, error) {
	switch cfg.Type {
	case IlluminationTemika:
		return NewTemikaIllumination(cfg, conn), nil
	case IlluminationThorLabs:
		return NewThorLabsIllumination(cfg.Serial, conn.GetLogger()), nil
	default:
		return nil, fmt.Errorf("%w: illumination %q", ErrUnknownControllerType, cfg.Type)
	}
}

// NewCamera selects a camera implementation from the configured type.
// The FLIR adapter sends its permanent acquisition settings on construction.
// IDS cameras have no adapter wired in this deployment.
func NewCamera(cfg CameraConfig, conn *temika.Conn) (Camera, error) {
	switch cfg.Type {
	case CameraFLIR:
		return NewTemikaCamera(cfg, conn)
	default:
		return nil, fmt.Errorf("%w: camera %q", ErrUnknownControllerType, cfg.Type)
	}
}
