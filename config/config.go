// Package config loads the rig configuration from environment variables and
// projects it into the connection and controller configs.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/lumilab/go-temika/device"
	"github.com/lumilab/go-temika/temika"
)

// SerialSettings is the serial port configuration of one vendor-native
// controller.
type SerialSettings struct {
	Port        string        `env:"SERIAL_PORT"`
	BaudRate    int           `env:"SERIAL_BAUDRATE" envDefault:"9600"`
	DataBits    int           `env:"SERIAL_DATABITS" envDefault:"8"`
	Parity      string        `env:"SERIAL_PARITY" envDefault:"N"`
	StopBits    int           `env:"SERIAL_STOPBITS" envDefault:"1"`
	ReadTimeout time.Duration `env:"SERIAL_READ_TIMEOUT" envDefault:"1s"`
}

func (s SerialSettings) serialConfig() device.SerialConfig {
	return device.SerialConfig{
		Port:        s.Port,
		BaudRate:    s.BaudRate,
		DataBits:    s.DataBits,
		Parity:      s.Parity,
		StopBits:    s.StopBits,
		ReadTimeout: s.ReadTimeout,
	}
}

// Config is the full rig configuration.
type Config struct {
	// Instrument session.
	Host           string        `env:"TEMIKA_HOST" envDefault:"127.0.0.1"`
	Port           int           `env:"TEMIKA_PORT" envDefault:"60000"`
	ConnectTimeout time.Duration `env:"TEMIKA_TIMEOUT" envDefault:"5s"`
	ReplyTimeout   time.Duration `env:"TEMIKA_REPLY_TIMEOUT" envDefault:"30s"`
	BufferSize     int           `env:"TEMIKA_BUFFER_SIZE" envDefault:"8192"`

	// Name is the instrument device identifier wrapping command fragments.
	Name string `env:"TEMIKA_NAME" envDefault:"microscopeone"`

	// Stage.
	StageType     device.StageType `env:"STAGE_TYPE" envDefault:"Temika"`
	Scale         float64          `env:"STAGE_SCALE" envDefault:"1.0"`
	OriginOffsetX float64          `env:"STAGE_ORIGIN_OFFSET_X" envDefault:"0"`
	OriginOffsetY float64          `env:"STAGE_ORIGIN_OFFSET_Y" envDefault:"0"`
	NormalSpeed   float64          `env:"STAGE_NORMAL_SPEED" envDefault:"1000"`
	MaxSpeed      float64          `env:"STAGE_MAX_SPEED" envDefault:"10000"`
	StageSerial   SerialSettings   `envPrefix:"STAGE_"`

	// Focus.
	FocusType   device.FocusType `env:"FOCUS_TYPE" envDefault:"Temika"`
	FocusSpeed  float64          `env:"FOCUS_SPEED" envDefault:"100"`
	FocusSerial SerialSettings   `envPrefix:"FOCUS_"`

	// Illumination.
	IlluminationType   device.IlluminationType `env:"ILLUMINATION_TYPE" envDefault:"Temika"`
	IlluminationSerial SerialSettings          `envPrefix:"ILLUMINATION_"`

	// Camera.
	CameraType device.CameraType `env:"CAMERA_TYPE" envDefault:"FLIR"`
	CameraName string            `env:"CAMERA_NAME"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return cfg, nil
}

// ConnectionConfig projects the session settings into a validated connection
// config.
func (c *Config) ConnectionConfig(opts ...temika.ConnOption) (*temika.ConnectionConfig, error) {
	base := []temika.ConnOption{
		temika.WithConnectTimeout(c.ConnectTimeout),
		temika.WithReplyTimeout(c.ReplyTimeout),
		temika.WithBufferSize(c.BufferSize),
	}

	return temika.NewConnectionConfig(c.Host, c.Port, append(base, opts...)...)
}

// StageConfig projects the stage settings.
func (c *Config) StageConfig() device.StageConfig {
	return device.StageConfig{
		Type:          c.StageType,
		Name:          c.Name,
		Scale:         c.Scale,
		OriginOffsetX: c.OriginOffsetX,
		OriginOffsetY: c.OriginOffsetY,
		NormalSpeed:   c.NormalSpeed,
		MaxSpeed:      c.MaxSpeed,
		Serial:        c.StageSerial.serialConfig(),
	}
}

// FocusConfig projects the focus settings.
func (c *Config) FocusConfig() device.FocusConfig {
	return device.FocusConfig{
		Type:   c.FocusType,
		Speed:  c.FocusSpeed,
		Serial: c.FocusSerial.serialConfig(),
	}
}

// IlluminationConfig projects the illumination settings.
func (c *Config) IlluminationConfig() device.IlluminationConfig {
	return device.IlluminationConfig{
		Type:   c.IlluminationType,
		Name:   c.Name,
		Serial: c.IlluminationSerial.serialConfig(),
	}
}

// CameraConfig projects the camera settings.
func (c *Config) CameraConfig() device.CameraConfig {
	return device.CameraConfig{
		Type: c.CameraType,
		Name: c.CameraName,
	}
}
