// Package logging configures the process-wide go-logging backend.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/juju/errors"
	"github.com/op/go-logging"
)

// Format is the log line layout.
const Format = "%{level:.1s}%{time:0102 15:04:05.000} %{shortfile}] %{message}"

// EnvLevel overrides the configured level when set.
const EnvLevel = "KEYLED_LOGLEVEL"

// Configure sets the log level and destination. An empty file logs to
// stderr. The returned closer releases the log file, if any.
func Configure(level, file string) (io.Closer, error) {
	if env := os.Getenv(EnvLevel); env != "" {
		level = env
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var out io.WriteCloser = nopCloser{os.Stderr}
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, errors.Annotatef(err, "opening log file %s", file)
		}
		out = f
	}

	backend := logging.NewLogBackend(out, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(Format))
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(lvl, "")
	logging.SetBackend(leveled)

	return out, nil
}

// ParseLevel accepts debug, info, notice, warning, error and critical.
// An empty string means info.
func ParseLevel(level string) (logging.Level, error) {
	if level == "" {
		return logging.INFO, nil
	}
	lvl, err := logging.LogLevel(strings.ToUpper(level))
	if err != nil {
		return logging.INFO, errors.NotValidf("log level %q", level)
	}
	return lvl, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
