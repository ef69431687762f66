package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the CLI logger. It discards output until InitLogger is called.
var Logger = newLogger(io.Discard, false)

// InitLogger sends log output to stderr, at debug level when verbose.
func InitLogger(verbose bool) {
	Logger = newLogger(os.Stderr, verbose)
}

// SetOutput redirects the logger, keeping its level.
func SetOutput(w io.Writer) {
	Logger.SetOutput(w)
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	return l
}
