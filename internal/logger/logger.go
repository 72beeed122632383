// Package logger provides the small leveled logger used by the command-line
// tools.
package logger

import (
	"io"
	"log"
)

// Logger is a printf-style logger with debug, info, and error levels.
type Logger interface {
	Debugf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

type stdLogger struct {
	l       *log.Logger
	verbose bool
}

// New returns a Logger writing to w.  Debug messages are dropped unless
// verbose is set.
func New(w io.Writer, verbose bool) Logger {
	return &stdLogger{l: log.New(w, "huffcode: ", log.LstdFlags), verbose: verbose}
}

func (s *stdLogger) Debugf(format string, v ...interface{}) {
	if s.verbose {
		s.l.Printf("[DEBUG] "+format, v...)
	}
}

func (s *stdLogger) Infof(format string, v ...interface{})  { s.l.Printf("[INFO] "+format, v...) }
func (s *stdLogger) Errorf(format string, v ...interface{}) { s.l.Printf("[ERROR] "+format, v...) }
