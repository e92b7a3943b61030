// Package config loads simulation, server and viewer settings from an
// optional YAML file and CHECKERS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/zucenko/checkers/model"
	"github.com/zucenko/checkers/sim"
)

const envPrefix = "CHECKERS"

const (
	KeyBoardSize      = "board.size"
	KeySquareSize     = "board.square_size"
	KeyBoardHeight    = "board.height"
	KeyBoardFile      = "board.file"
	KeySpeedSq        = "sim.speed_sq"
	KeySnapDistanceSq = "sim.snap_distance_sq"
	KeyFadeDuration   = "sim.fade_duration"
	KeyMinDistanceSq  = "anim.min_distance_sq"
	KeyGain           = "audio.gain"
	KeyPort           = "server.port"
	KeyFrameInterval  = "server.frame_interval"
	KeyLogLevel       = "log.level"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	BoardSize      int
	SquareSize     float64
	BoardHeight    float64
	BoardFile      string
	SpeedSq        float64
	SnapDistanceSq float64
	FadeDuration   float64
	MinDistanceSq  float64
	Gain           float64
	Port           string
	FrameInterval  time.Duration
	LogLevel       log.Level
}

// New returns a viper instance with defaults and env binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyBoardSize, 5)
	v.SetDefault(KeySquareSize, 80.0)
	v.SetDefault(KeyBoardHeight, 10.0)
	v.SetDefault(KeyBoardFile, "")
	v.SetDefault(KeySpeedSq, 0.0)
	v.SetDefault(KeySnapDistanceSq, 10.0)
	v.SetDefault(KeyFadeDuration, 0.5)
	v.SetDefault(KeyMinDistanceSq, 10.0)
	v.SetDefault(KeyGain, 0.5)
	v.SetDefault(KeyPort, "8080")
	v.SetDefault(KeyFrameInterval, 50*time.Millisecond)
	v.SetDefault(KeyLogLevel, "info")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// FlagKeys maps command line flag names to config keys.
var FlagKeys = map[string]string{
	"size":      KeyBoardSize,
	"board":     KeyBoardFile,
	"port":      KeyPort,
	"log-level": KeyLogLevel,
}

// Load reads file when it is not empty and decodes the result.
func Load(file string) (*Config, error) {
	return LoadFlags(file, nil)
}

// LoadFlags is Load with changed flags taking precedence over file and env.
func LoadFlags(file string, flags *pflag.FlagSet) (*Config, error) {
	v := New()
	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}
	return Decode(v)
}

func Decode(v *viper.Viper) (*Config, error) {
	level, err := log.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, err)
	}
	c := &Config{
		BoardSize:      v.GetInt(KeyBoardSize),
		SquareSize:     v.GetFloat64(KeySquareSize),
		BoardHeight:    v.GetFloat64(KeyBoardHeight),
		BoardFile:      v.GetString(KeyBoardFile),
		SpeedSq:        v.GetFloat64(KeySpeedSq),
		SnapDistanceSq: v.GetFloat64(KeySnapDistanceSq),
		FadeDuration:   v.GetFloat64(KeyFadeDuration),
		MinDistanceSq:  v.GetFloat64(KeyMinDistanceSq),
		Gain:           v.GetFloat64(KeyGain),
		Port:           v.GetString(KeyPort),
		FrameInterval:  v.GetDuration(KeyFrameInterval),
		LogLevel:       level,
	}
	// PORT wins, the way hosted environments expect
	if port := os.Getenv("PORT"); port != "" {
		c.Port = port
	}
	if c.SpeedSq == 0 {
		c.SpeedSq = c.SquareSize * c.SquareSize
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	switch {
	case c.BoardSize < 1:
		return fmt.Errorf("%w: %s must be at least 1", ErrInvalid, KeyBoardSize)
	case c.SquareSize <= 0:
		return fmt.Errorf("%w: %s must be positive", ErrInvalid, KeySquareSize)
	case c.SpeedSq <= 0:
		return fmt.Errorf("%w: %s must be positive", ErrInvalid, KeySpeedSq)
	case c.SnapDistanceSq < 0:
		return fmt.Errorf("%w: %s must not be negative", ErrInvalid, KeySnapDistanceSq)
	case c.MinDistanceSq <= 0:
		return fmt.Errorf("%w: %s must be positive", ErrInvalid, KeyMinDistanceSq)
	case c.Gain < 0 || c.Gain > 1:
		return fmt.Errorf("%w: %s must be within [0,1]", ErrInvalid, KeyGain)
	case c.FrameInterval <= 0:
		return fmt.Errorf("%w: %s must be positive", ErrInvalid, KeyFrameInterval)
	}
	return nil
}

func (c *Config) Settings() sim.Settings {
	return sim.Settings{
		Layout:         model.Layout{SquareSize: c.SquareSize, Height: c.BoardHeight},
		SpeedSq:        c.SpeedSq,
		SnapDistanceSq: c.SnapDistanceSq,
		MinDistanceSq:  c.MinDistanceSq,
		FadeDuration:   c.FadeDuration,
		Gain:           c.Gain,
	}
}
