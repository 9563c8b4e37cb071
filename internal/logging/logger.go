// Package logging builds the diagnostic logger shared by the devtools CLIs.
//
// Diagnostics always go to stderr so that stdout carries only the command
// result (file lists, stats values, JSON documents).
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Options controls logger construction.
type Options struct {
	// Verbose lowers the level to debug; otherwise only warnings and errors are logged.
	Verbose bool
	// JSON switches to the JSON formatter, matching --json command output.
	JSON bool
}

// New returns a logger writing to w (stderr when nil).
func New(w io.Writer, opts Options) *logrus.Logger {
	if w == nil {
		w = os.Stderr
	}

	log := logrus.New()
	log.SetOutput(w)

	level := logrus.WarnLevel
	if opts.Verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	if opts.JSON {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
			DisableQuote:     true,
		})
	}
	return log
}

// Discard returns a logger that drops everything. Useful for library callers
// and tests that do not care about diagnostics.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.PanicLevel)
	return log
}

// OrDiscard returns log, or a discarding logger when log is nil.
func OrDiscard(log logrus.FieldLogger) logrus.FieldLogger {
	if log == nil {
		return Discard()
	}
	return log
}
