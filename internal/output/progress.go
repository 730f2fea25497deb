// Package output renders monitor reports as console text or JSON and
// reports run progress to stderr.
package output

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Progress writes elapsed-stamped status lines while a run is in flight.
// The zero value is silent; use NewProgress.
type Progress struct {
	w       io.Writer
	enabled bool
	verbose bool
	start   time.Time
}

// NewProgress creates a Progress reporter writing to stderr. Disabled
// reporters swallow everything (--quiet).
func NewProgress(enabled, verbose bool) *Progress {
	return &Progress{
		w:       os.Stderr,
		enabled: enabled || verbose,
		verbose: verbose,
		start:   time.Now(),
	}
}

// Log prints a progress line if the reporter is enabled.
func (p *Progress) Log(format string, args ...interface{}) {
	if p == nil || !p.enabled {
		return
	}
	p.emit("", format, args...)
}

// Debug prints a line only in verbose mode.
func (p *Progress) Debug(format string, args ...interface{}) {
	if p == nil || !p.verbose {
		return
	}
	p.emit("DEBUG: ", format, args...)
}

func (p *Progress) emit(prefix, format string, args ...interface{}) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	fmt.Fprintf(p.w, "[%s] %s%s\n", elapsed, prefix, fmt.Sprintf(format, args...))
}
