// Package logger builds zap loggers from a Config that names a destination,
// a file mode, and a level.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	// Path is a file path or one of "stderr" and "stdout".  Empty means
	// stderr.
	Path  string        `yaml:"path"`
	Mode  FileMode      `yaml:"mode" validate:"omitempty,oneof=append truncate rotate"`
	Level zapcore.Level `yaml:"level"`
	// DevMode selects zap's human-oriented console encoder.
	DevMode bool `yaml:"devmode"`
}

type FileMode string

const (
	FileModeAppend   FileMode = "append"
	FileModeTruncate FileMode = "truncate"
	FileModeRotate   FileMode = "rotate"
)

func (m *FileMode) Set(s string) error {
	switch mode := FileMode(s); mode {
	case FileModeAppend, FileModeTruncate, FileModeRotate:
		*m = mode
		return nil
	}
	return fmt.Errorf("unsupported file mode %q", s)
}

func (m FileMode) String() string {
	return string(m)
}

func (m *FileMode) UnmarshalText(b []byte) error {
	return m.Set(string(b))
}

func New(conf Config) (*zap.Logger, error) {
	core, err := NewCore(conf)
	if err != nil {
		return nil, err
	}
	return zap.New(core, zap.AddCaller()), nil
}

func NewCore(conf Config) (zapcore.Core, error) {
	w, err := OpenFile(conf.Path, conf.Mode)
	if err != nil {
		return nil, err
	}
	var enc zapcore.Encoder
	if conf.DevMode {
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	return zapcore.NewCore(enc, w, conf.Level), nil
}

// OpenFile returns a WriteSyncer for path.  Rotate mode hands the file to
// lumberjack, which rotates it once it reaches 100 megabytes.
func OpenFile(path string, mode FileMode) (zapcore.WriteSyncer, error) {
	switch path {
	case "", "stderr":
		return zapcore.Lock(os.Stderr), nil
	case "stdout":
		return zapcore.Lock(os.Stdout), nil
	}
	if mode == "" {
		mode = FileModeAppend
	}
	switch mode {
	case FileModeRotate:
		return zapcore.AddSync(&lumberjack.Logger{
			Filename: path,
			MaxSize:  100,
		}), nil
	case FileModeAppend, FileModeTruncate:
		flag := os.O_WRONLY | os.O_CREATE | os.O_APPEND
		if mode == FileModeTruncate {
			flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		}
		f, err := os.OpenFile(path, flag, 0644)
		if err != nil {
			return nil, err
		}
		return zapcore.Lock(f), nil
	}
	return nil, fmt.Errorf("unsupported file mode %q", mode)
}
