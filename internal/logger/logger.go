// Package logger provides the component-tagged structured logger handed to
// every collaborator. There is no package-level instance: callers build one
// with Init and pass it on.
package logger

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"opencv-filtering/internal/config"
)

type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
}

// Init builds a logger from cfg. The returned closer releases the log file,
// if one was opened.
func Init(cfg config.LogConfig) (*ZerologAdapter, io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "invalid log level %q", cfg.Level)
	}

	var console io.Writer = zerolog.ConsoleWriter{Out: os.Stdout}
	if cfg.JSON {
		console = os.Stdout
	}

	if cfg.File == "" {
		return NewZerolog(console, level), nopCloser{}, nil
	}

	file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "cannot open log file %s", cfg.File)
	}

	return NewZerolog(zerolog.MultiLevelWriter(console, file), level), file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Nop discards everything.
type Nop struct{}

func (Nop) Debug(component, message string, fields map[string]interface{})   {}
func (Nop) Info(component, message string, fields map[string]interface{})    {}
func (Nop) Warning(component, message string, fields map[string]interface{}) {}
func (Nop) Error(component string, err error, fields map[string]interface{}) {}
