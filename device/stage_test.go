package device_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lumilab/go-temika/device"
	"github.com/lumilab/go-temika/logger"
	"github.com/lumilab/go-temika/temika"
	"github.com/lumilab/go-temika/temikatest"
)

func newDeviceConn(t *testing.T, srv *temikatest.Server, opts ...temika.ConnOption) *temika.Conn {
	t.Helper()

	base := []temika.ConnOption{
		temika.WithConnectTimeout(500 * time.Millisecond),
		temika.WithReplyTimeout(2 * time.Second),
		temika.WithPollInterval(50 * time.Millisecond),
	}
	cfg, err := temika.NewConnectionConfig(srv.Host(), srv.Port(), append(base, opts...)...)
	require.NoError(t, err)

	conn, err := temika.NewConn(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

// receivedEventually waits until the server transcript contains want.
func receivedEventually(t *testing.T, srv *temikatest.Server, want string) {
	t.Helper()
	require.Eventually(t, func() bool {
		return strings.Contains(srv.Received(), want)
	}, 2*time.Second, 10*time.Millisecond, "server never received %q", want)
}

func TestTemikaStage_MoveRoundTrip(t *testing.T) {
	require := require.New(t)

	srv, err := temikatest.Start()
	require.NoError(err)
	defer srv.Close()

	conn := newDeviceConn(t, srv)
	stage := device.NewTemikaStage(device.StageConfig{Name: "microscopeone"}, conn)

	require.NoError(stage.Move(device.AxisX, 100, device.SpeedNormal))
	require.InDelta(100.0, srv.Position("x"), 1e-9)

	pos, err := stage.Position(device.AxisX)
	require.NoError(err)
	require.InDelta(100.0, pos, 1e-9)
}

func TestTemikaStage_MoveCommandFormat(t *testing.T) {
	require := require.New(t)

	srv, err := temikatest.Start()
	require.NoError(err)
	defer srv.Close()

	conn := newDeviceConn(t, srv)
	stage := device.NewTemikaStage(device.StageConfig{
		Name:        "microscopeone",
		NormalSpeed: 1500,
		MaxSpeed:    9000,
	}, conn)

	require.NoError(stage.Move(device.AxisX, 25, device.SpeedMax))

	received := srv.Received()
	require.Contains(received,
		`<microscopeone><stepper axis="x"><move_absolute>25 9000</move_absolute>`+
			`<wait_moving_end></wait_moving_end></stepper></microscopeone>`)
}

func TestTemikaStage_ScaleAndOffset(t *testing.T) {
	require := require.New(t)

	srv, err := temikatest.Start()
	require.NoError(err)
	defer srv.Close()

	conn := newDeviceConn(t, srv)
	stage := device.NewTemikaStage(device.StageConfig{
		Name:          "microscopeone",
		Scale:         2.0,
		OriginOffsetX: 50,
	}, conn)

	// device position = 100*2 - 50
	require.NoError(stage.Move(device.AxisX, 100, device.SpeedNormal))
	require.InDelta(150.0, srv.Position("x"), 1e-9)

	// the read path only unscales, it does not add the offset back
	pos, err := stage.Position(device.AxisX)
	require.NoError(err)
	require.InDelta(75.0, pos, 1e-9)
}

func TestTemikaStage_YAxisInverted(t *testing.T) {
	require := require.New(t)

	srv, err := temikatest.Start()
	require.NoError(err)
	defer srv.Close()

	conn := newDeviceConn(t, srv)
	stage := device.NewTemikaStage(device.StageConfig{Name: "microscopeone"}, conn)

	require.NoError(stage.Move(device.AxisY, 10, device.SpeedNormal))
	require.InDelta(-10.0, srv.Position("y"), 1e-9)

	// the sign inversion applies only on the write path
	pos, err := stage.Position(device.AxisY)
	require.NoError(err)
	require.InDelta(-10.0, pos, 1e-9)
}

func TestTemikaStage_Reset(t *testing.T) {
	require := require.New(t)

	srv, err := temikatest.Start()
	require.NoError(err)
	defer srv.Close()

	conn := newDeviceConn(t, srv)
	stage := device.NewTemikaStage(device.StageConfig{Name: "microscopeone"}, conn)

	require.NoError(stage.Move(device.AxisX, 42, device.SpeedNormal))
	require.NoError(stage.Reset(device.AxisX))

	receivedEventually(t, srv,
		`<microscopeone><stepper axis="x"><reset></reset></stepper></microscopeone>`)
	require.Eventually(func() bool {
		return srv.Position("x") == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestTemikaStage_PositionParseMissDegradesToZero(t *testing.T) {
	require := require.New(t)

	srv, err := temikatest.Start()
	require.NoError(err)
	defer srv.Close()

	// contains the wait token "status" but not the "status " scalar marker
	srv.SetStatusReply("stepper x status-unavailable\n")

	mockLog := logger.NewMockLogger()
	mockLog.On("Level").Return(logger.InfoLevel).Maybe()
	mockLog.On("Debug", mock.Anything, mock.Anything).Maybe()
	mockLog.On("Info", mock.Anything, mock.Anything).Maybe()
	mockLog.On("Warn", mock.Anything, mock.Anything).Maybe()
	mockLog.On("Error", mock.Anything, mock.Anything)

	conn := newDeviceConn(t, srv, temika.WithLogger(mockLog))
	stage := device.NewTemikaStage(device.StageConfig{Name: "microscopeone"}, conn)

	pos, err := stage.Position(device.AxisX)
	require.NoError(err)
	require.Zero(pos)

	mockLog.AssertNumberOfCalls(t, "Error", 1)
}
