// Package progress draws a spinner and a status label while a background job
// is running.
package progress

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

// Tick is the redraw interval
const Tick = 100 * time.Millisecond

// Glyphs is the spinner sequence
var Glyphs = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// clearLine returns the cursor to column 0 and erases the line
const clearLine = "\r\033[K"

// Job is the liveness view of a background job
type Job interface {
	Alive() bool
	Done() <-chan struct{}
}

// Presenter renders "<glyph> <label>" on a status line
type Presenter struct {
	out    io.Writer
	tick   time.Duration
	glyphs []string
	color  *color.Color
}

// New creates a presenter writing to out with the default tick and glyphs
func New(out io.Writer) *Presenter {
	return &Presenter{
		out:    out,
		tick:   Tick,
		glyphs: Glyphs,
		color:  color.New(color.FgCyan, color.Bold),
	}
}

// WithTick overrides the redraw interval
func (p *Presenter) WithTick(d time.Duration) *Presenter {
	p.tick = d
	return p
}

// Run redraws the status line until job ends or ctx is cancelled. Liveness is
// checked before every draw and every wait, and the wait itself returns as
// soon as the job finishes, so completion is noticed within one tick at most.
// The line is cleared before returning.
func (p *Presenter) Run(ctx context.Context, job Job, label string) error {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	defer fmt.Fprint(p.out, clearLine)

	for i := 0; ; i = (i + 1) % len(p.glyphs) {
		if !job.Alive() {
			return nil
		}
		fmt.Fprintf(p.out, "%s%s %s", clearLine, p.color.Sprint(p.glyphs[i]), label)

		if !job.Alive() {
			return nil
		}
		select {
		case <-job.Done():
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
