package device_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumilab/go-temika/device"
	"github.com/lumilab/go-temika/temikatest"
)

func TestNewStage(t *testing.T) {
	require := require.New(t)

	srv, err := temikatest.Start()
	require.NoError(err)
	defer srv.Close()

	conn := newDeviceConn(t, srv)

	stage, err := device.NewStage(device.StageConfig{Type: device.StageTemika, Name: "scope"}, conn)
	require.NoError(err)
	require.IsType(&device.TemikaStage{}, stage)

	stage, err = device.NewStage(device.StageConfig{Type: device.StageOlympus}, conn)
	require.NoError(err)
	require.IsType(&device.OlympusStage{}, stage)

	_, err = device.NewStage(device.StageConfig{Type: "Zeiss"}, conn)
	require.ErrorIs(err, device.ErrUnknownControllerType)
	require.ErrorContains(err, "Zeiss")
}

func TestNewFocus(t *testing.T) {
	require := require.New(t)

	srv, err := temikatest.Start()
	require.NoError(err)
	defer srv.Close()

	conn := newDeviceConn(t, srv)

	focus, err := device.NewFocus(device.FocusConfig{Type: device.FocusTemika}, conn)
	require.NoError(err)
	require.IsType(&device.TemikaFocus{}, focus)

	focus, err = device.NewFocus(device.FocusConfig{Type: device.FocusOlympusX81}, conn)
	require.NoError(err)
	require.IsType(&device.OlympusX81Focus{}, focus)

	_, err = device.NewFocus(device.FocusConfig{Type: "Nikon"}, conn)
	require.ErrorIs(err, device.ErrUnknownControllerType)
}

func TestNewIllumination(t *testing.T) {
	require := require.New(t)

	srv, err := temikatest.Start()
	require.NoError(err)
	defer srv.Close()

	conn := newDeviceConn(t, srv)

	illum, err := device.NewIllumination(device.IlluminationConfig{Type: device.IlluminationTemika, Name: "scope"}, conn)
	require.NoError(err)
	require.IsType(&device.TemikaIllumination{}, illum)

	illum, err = device.NewIllumination(device.IlluminationConfig{Type: device.IlluminationThorLabs}, conn)
	require.NoError(err)
	require.IsType(&device.ThorLabsIllumination{}, illum)

	_, err = device.NewIllumination(device.IlluminationConfig{Type: "CoolLED"}, conn)
	require.ErrorIs(err, device.ErrUnknownControllerType)
}

func TestNewCamera(t *testing.T) {
	require := require.New(t)

	srv, err := temikatest.Start()
	require.NoError(err)
	defer srv.Close()

	conn := newDeviceConn(t, srv)

	cam, err := device.NewCamera(device.CameraConfig{Type: device.CameraFLIR, Name: "cam"}, conn)
	require.NoError(err)
	require.IsType(&device.TemikaCamera{}, cam)

	// no IDS adapter is wired
	_, err = device.NewCamera(device.CameraConfig{Type: device.CameraIDS, Name: "cam"}, conn)
	require.ErrorIs(err, device.ErrUnknownControllerType)
}
