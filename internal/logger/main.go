// Package logger configures the global zerolog logger.
package logger

import (
	"io"
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelWriter routes log lines to a writer per level group.
// Debug and info share InfoWriter; error, fatal and panic share ErrorWriter.
type LevelWriter struct {
	io.Writer
	ErrorWriter io.Writer
	InfoWriter  io.Writer
	TraceWriter io.Writer
	WarnWriter  io.Writer
}

// WriteLevel implements zerolog.LevelWriter.
func (lw *LevelWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	var w io.Writer

	switch {
	case l == zerolog.Disabled:
		return 0, nil
	case l == zerolog.TraceLevel:
		w = lw.TraceWriter
	case l == zerolog.WarnLevel:
		w = lw.WarnWriter
	case l > zerolog.WarnLevel:
		w = lw.ErrorWriter
	default:
		w = lw.InfoWriter
	}

	if w == nil {
		return len(p), nil
	}

	return w.Write(p) //nolint:wrapcheck
}

// Init replaces the global logger according to cfg.
// With neither console nor file enabled nothing is written.
func Init(cfg Log) error {
	logLevel, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrapf(err, "loglevel %s is not supported", cfg.LogLevel)
	}

	if cfg.ServiceName == "" {
		return ErrServiceNameIsEmpty
	}

	if cfg.AppName == "" {
		return ErrAppNameIsEmpty
	}

	stack := logLevel == zerolog.TraceLevel
	if stack {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack //nolint:reassign
	}

	zerolog.SetGlobalLevel(logLevel)
	zerolog.ErrorHandler = ErrorHandler //nolint:reassign

	var writers []io.Writer

	if cfg.Console.Enabled {
		writers = append(writers, NewConsoleWriter(cfg))
	}

	if cfg.File.Enabled {
		if w := newRollingLevelFiles(cfg.File); w != nil {
			writers = append(writers, w)
		}
	}

	zctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Hook(NewPrometheusHook(cfg.ServiceName)).
		With().
		Timestamp().
		Str("app", cfg.AppName)

	switch {
	case cfg.ReportCaller && stack:
		zctx = zctx.Stack()
	case cfg.ReportCaller:
		zctx = zctx.Caller()
	}

	log.Logger = zctx.Logger()

	return nil
}

// NewRollingFile returns a lumberjack writer for one configured file in dir.
func NewRollingFile(dir string, f RollingFile) io.Writer {
	return &lumberjack.Logger{
		Filename:   path.Join(dir, f.Name),
		MaxSize:    f.MaxSize,
		MaxAge:     f.MaxAge,
		MaxBackups: f.MaxBackups,
	}
}

func newRollingLevelFiles(cfg LogFile) io.Writer {
	if err := os.MkdirAll(cfg.Path, 0o750); err != nil { //nolint:mnd
		log.Error().Err(err).Str("path", cfg.Path).Msg("can't create log directory")

		return nil
	}

	return &LevelWriter{
		ErrorWriter: NewRollingFile(cfg.Path, cfg.Error),
		InfoWriter:  NewRollingFile(cfg.Path, cfg.Info),
		TraceWriter: NewRollingFile(cfg.Path, cfg.Trace),
		WarnWriter:  NewRollingFile(cfg.Path, cfg.Warn),
	}
}

// NewConsoleWriter writes info and debug to stdout, everything else to stderr.
func NewConsoleWriter(cfg Log) io.Writer {
	out := func(f *os.File) io.Writer {
		if !cfg.Console.UseConsoleWriter {
			return f
		}

		return zerolog.ConsoleWriter{Out: f, TimeFormat: zerolog.TimeFieldFormat}
	}

	return &LevelWriter{
		ErrorWriter: out(os.Stderr),
		InfoWriter:  out(os.Stdout),
		TraceWriter: out(os.Stderr),
		WarnWriter:  out(os.Stderr),
	}
}
