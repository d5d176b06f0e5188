package logflags

import (
	"flag"

	"github.com/brimdata/stax/pkg/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Flags struct {
	Config logger.Config
}

func (l *Flags) SetFlags(fs *flag.FlagSet) {
	l.Config.Level = zapcore.InfoLevel
	l.Config.Mode = logger.FileModeAppend
	fs.Var(&l.Config.Level, "log.level", "logging level")
	fs.StringVar(&l.Config.Path, "log.path", "stderr", "path to send logs (values: stderr, stdout, path in file system)")
	fs.Var(&l.Config.Mode, "log.filemode", "mode for writing to log file (values: append, truncate, rotate)")
	fs.BoolVar(&l.Config.DevMode, "log.devmode", false, "write human-readable console logs instead of JSON")
}

func (l *Flags) Open() (*zap.Logger, error) {
	return logger.New(l.Config)
}
