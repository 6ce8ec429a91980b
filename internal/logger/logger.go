package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// New returns the stderr logger shared across the CLI. stdout is reserved
// for version output, so every diagnostic line goes here. Verbose raises
// the level to debug; the default only surfaces warnings and errors.
func New(verbose bool) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
	if verbose {
		l.SetLevel(log.DebugLevel)
	} else {
		l.SetLevel(log.WarnLevel)
	}
	return l
}

// Progress wraps a logger as an io.Writer for git transfer output. Remote
// operations write their progress here instead of stdout, which keeps
// version output machine-readable.
func Progress(l *log.Logger) io.Writer {
	return progressWriter{l: l}
}

type progressWriter struct {
	l *log.Logger
}

func (w progressWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(string(p), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			w.l.Debug(line)
		}
	}
	return len(p), nil
}
