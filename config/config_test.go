package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lumilab/go-temika/config"
	"github.com/lumilab/go-temika/device"
)

func TestLoad_Defaults(t *testing.T) {
	require := require.New(t)

	cfg, err := config.Load()
	require.NoError(err)

	require.Equal("127.0.0.1", cfg.Host)
	require.Equal(60000, cfg.Port)
	require.Equal(5*time.Second, cfg.ConnectTimeout)
	require.Equal(30*time.Second, cfg.ReplyTimeout)
	require.Equal(8192, cfg.BufferSize)
	require.Equal("microscopeone", cfg.Name)
	require.Equal(device.StageTemika, cfg.StageType)
	require.InDelta(1.0, cfg.Scale, 1e-9)
	require.InDelta(1000.0, cfg.NormalSpeed, 1e-9)
	require.InDelta(10000.0, cfg.MaxSpeed, 1e-9)
	require.Equal(device.FocusTemika, cfg.FocusType)
	require.InDelta(100.0, cfg.FocusSpeed, 1e-9)
	require.Equal(device.IlluminationTemika, cfg.IlluminationType)
	require.Equal(device.CameraFLIR, cfg.CameraType)
	require.Equal(9600, cfg.StageSerial.BaudRate)
}

func TestLoad_Environment(t *testing.T) {
	require := require.New(t)

	t.Setenv("TEMIKA_HOST", "10.0.0.7")
	t.Setenv("TEMIKA_PORT", "60123")
	t.Setenv("TEMIKA_REPLY_TIMEOUT", "90s")
	t.Setenv("TEMIKA_NAME", "annealrig")
	t.Setenv("STAGE_TYPE", "Olympus")
	t.Setenv("STAGE_SCALE", "2.5")
	t.Setenv("STAGE_ORIGIN_OFFSET_X", "50")
	t.Setenv("STAGE_SERIAL_PORT", "/dev/ttyUSB0")
	t.Setenv("STAGE_SERIAL_BAUDRATE", "19200")
	t.Setenv("FOCUS_TYPE", "OlympusX81")
	t.Setenv("FOCUS_SERIAL_PORT", "/dev/ttyUSB1")
	t.Setenv("ILLUMINATION_TYPE", "ThorLabs")
	t.Setenv("CAMERA_NAME", "Genicam FLIR Blackfly S BFS-U3-70S7M 0159F410")

	cfg, err := config.Load()
	require.NoError(err)

	require.Equal("10.0.0.7", cfg.Host)
	require.Equal(60123, cfg.Port)
	require.Equal(90*time.Second, cfg.ReplyTimeout)
	require.Equal("annealrig", cfg.Name)
	require.Equal(device.StageOlympus, cfg.StageType)
	require.InDelta(2.5, cfg.Scale, 1e-9)
	require.Equal("/dev/ttyUSB0", cfg.StageSerial.Port)
	require.Equal(19200, cfg.StageSerial.BaudRate)
	require.Equal("/dev/ttyUSB1", cfg.FocusSerial.Port)
	require.Equal(device.IlluminationThorLabs, cfg.IlluminationType)
	require.Equal(device.CameraFLIR, cfg.CameraType)
}

func TestConfig_Projections(t *testing.T) {
	require := require.New(t)

	t.Setenv("TEMIKA_NAME", "annealrig")
	t.Setenv("STAGE_SCALE", "2.0")
	t.Setenv("STAGE_ORIGIN_OFFSET_X", "50")
	t.Setenv("FOCUS_SPEED", "250")

	cfg, err := config.Load()
	require.NoError(err)

	connCfg, err := cfg.ConnectionConfig()
	require.NoError(err)
	require.NotNil(connCfg)

	stageCfg := cfg.StageConfig()
	require.Equal("annealrig", stageCfg.Name)
	require.InDelta(2.0, stageCfg.Scale, 1e-9)
	require.InDelta(50.0, stageCfg.OriginOffsetX, 1e-9)

	focusCfg := cfg.FocusConfig()
	require.InDelta(250.0, focusCfg.Speed, 1e-9)

	illumCfg := cfg.IlluminationConfig()
	require.Equal("annealrig", illumCfg.Name)
}

func TestConfig_ConnectionConfigRejectsBadValues(t *testing.T) {
	require := require.New(t)

	t.Setenv("TEMIKA_PORT", "0")

	cfg, err := config.Load()
	require.NoError(err)

	_, err = cfg.ConnectionConfig()
	require.Error(err)
}
