package temika_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lumilab/go-temika/logger"
	"github.com/lumilab/go-temika/temika"
)

func TestNewConnectionConfig(t *testing.T) {
	require := require.New(t)

	t.Run("defaults", func(t *testing.T) {
		cfg, err := temika.NewConnectionConfig("127.0.0.1", 60000)
		require.NoError(err)
		require.NotNil(cfg)
	})

	t.Run("empty host", func(t *testing.T) {
		_, err := temika.NewConnectionConfig("", 60000)
		require.Error(err)
	})

	t.Run("port out of range", func(t *testing.T) {
		_, err := temika.NewConnectionConfig("127.0.0.1", 0)
		require.Error(err)

		_, err = temika.NewConnectionConfig("127.0.0.1", 65536)
		require.Error(err)
	})

	t.Run("option validation", func(t *testing.T) {
		_, err := temika.NewConnectionConfig("127.0.0.1", 60000,
			temika.WithConnectTimeout(time.Millisecond),
		)
		require.Error(err)

		_, err = temika.NewConnectionConfig("127.0.0.1", 60000,
			temika.WithReplyTimeout(time.Millisecond),
		)
		require.Error(err)

		_, err = temika.NewConnectionConfig("127.0.0.1", 60000,
			temika.WithPollInterval(time.Millisecond),
		)
		require.Error(err)

		_, err = temika.NewConnectionConfig("127.0.0.1", 60000,
			temika.WithBufferSize(16),
		)
		require.Error(err)
	})

	t.Run("valid options", func(t *testing.T) {
		cfg, err := temika.NewConnectionConfig("127.0.0.1", 60000,
			temika.WithConnectTimeout(time.Second),
			temika.WithReplyTimeout(10*time.Second),
			temika.WithPollInterval(100*time.Millisecond),
			temika.WithBufferSize(4096),
			temika.WithLogger(logger.GetLogger()),
		)
		require.NoError(err)
		require.NotNil(cfg)
	})
}

func TestNewConn_NilConfig(t *testing.T) {
	_, err := temika.NewConn(nil)
	require.ErrorIs(t, err, temika.ErrConnConfigNil)
}
