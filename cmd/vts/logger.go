package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/in-toto/go-vts/internal/config"
	"github.com/in-toto/go-vts/log"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
)

func newLogger(cfg config.Log, w io.Writer) (log.Logger, error) {
	switch cfg.Backend {
	case "", "logrus":
		return newLogrusLogger(cfg, w)
	case "zerolog":
		return newZerologLogger(cfg, w)
	default:
		return nil, fmt.Errorf("unknown log backend %q", cfg.Backend)
	}
}

func newLogrusLogger(cfg config.Log, w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			DisableColors: !isTerminal(w),
		})
	}

	return logger, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// zerologLogger adapts zerolog to the log.Logger interface.
type zerologLogger struct {
	l zerolog.Logger
}

func newZerologLogger(cfg config.Log, w io.Writer) (zerologLogger, error) {
	// logrus also accepts "warning", zerolog only "warn"
	name := strings.ToLower(cfg.Level)
	if name == "warning" {
		name = "warn"
	}

	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerologLogger{}, err
	}

	out := w
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: w, NoColor: !isTerminal(w)}
	}

	return zerologLogger{l: zerolog.New(out).Level(level).With().Timestamp().Logger()}, nil
}

func (z zerologLogger) Errorf(format string, args ...interface{}) { z.l.Error().Msgf(format, args...) }
func (z zerologLogger) Error(args ...interface{})                 { z.l.Error().Msg(fmt.Sprint(args...)) }
func (z zerologLogger) Warnf(format string, args ...interface{})  { z.l.Warn().Msgf(format, args...) }
func (z zerologLogger) Warn(args ...interface{})                  { z.l.Warn().Msg(fmt.Sprint(args...)) }
func (z zerologLogger) Debugf(format string, args ...interface{}) { z.l.Debug().Msgf(format, args...) }
func (z zerologLogger) Debug(args ...interface{})                 { z.l.Debug().Msg(fmt.Sprint(args...)) }
func (z zerologLogger) Infof(format string, args ...interface{})  { z.l.Info().Msgf(format, args...) }
func (z zerologLogger) Info(args ...interface{})                  { z.l.Info().Msg(fmt.Sprint(args...)) }
