// ABOUTME: Single-line progress bar redrawn in place with rate and ETA readouts
// ABOUTME: Caller-driven: every mutation re-renders, no background goroutine

package progress

import (
	"fmt"
	"strings"
	"time"

	"github.com/signalforge/termkit/pkg/term"
	"github.com/signalforge/termkit/pkg/width"
)

// Bar is a determinate progress indicator. It redraws its line on every
// Advance/Set and becomes immutable once finished.
type Bar struct {
	s        *term.Session
	total    int
	current  int
	label    string
	started  time.Time
	finished bool

	now func() time.Time // stubbed in tests
}

// NewBar creates a bar out of total steps and renders it at zero.
func NewBar(s *term.Session, total int, label string) *Bar {
	if total < 1 {
		total = 1
	}
	b := &Bar{
		s:     s,
		total: total,
		label: label,
		now:   time.Now,
	}
	b.started = b.now()
	b.render()
	return b
}

// Advance moves the bar forward by n steps, clamped to the total.
func (b *Bar) Advance(n int) {
	if b.finished {
		return
	}
	b.current += n
	b.clamp()
	b.render()
}

// Set positions the bar at current, clamped to [0, total].
func (b *Bar) Set(current int) {
	if b.finished {
		return
	}
	b.current = current
	b.clamp()
	b.render()
}

// Current returns the bar's position.
func (b *Bar) Current() int { return b.current }

// Finished reports whether Finish has been called.
func (b *Bar) Finished() bool { return b.finished }

// Finish completes the bar and replaces it with a checkmark line. The
// message falls back to the label ("label - Done!") and then to "Done!".
func (b *Bar) Finish(message string) {
	if b.finished {
		return
	}
	b.finished = true
	b.current = b.total

	buf := b.s.Buffer()
	buf.WriteString("\r\x1b[K")
	switch {
	case message != "":
		buf.WriteString("\x1b[32m✓\x1b[0m " + message)
	case b.label != "":
		buf.WriteString("\x1b[32m✓\x1b[0m " + b.label + " - Done!")
	default:
		buf.WriteString("\x1b[32m✓\x1b[0m Done!")
	}
	buf.WriteString("\n")
	buf.Flush()
}

func (b *Bar) clamp() {
	if b.current < 0 {
		b.current = 0
	}
	if b.current > b.total {
		b.current = b.total
	}
}

// render redraws the full line:
//
//	label [====>     ] 42% (42/100) 5.2/s ETA: 00:12
func (b *Bar) render() {
	cols := b.s.Cols()

	elapsed := b.now().Sub(b.started).Seconds()
	rate := 0.0
	if elapsed > 0 {
		rate = float64(b.current) / elapsed
	}
	etaSec := 0
	if rate > 0 {
		etaSec = int(float64(b.total-b.current) / rate)
	}

	info := fmt.Sprintf(" %d%% (%d/%d) %.1f/s ETA: %02d:%02d",
		b.current*100/b.total, b.current, b.total, rate,
		etaSec/60, etaSec%60)

	labelWidth := 0
	if b.label != "" {
		labelWidth = width.DisplayWidth(b.label) + 1
	}
	barWidth := cols - labelWidth - len(info) - 3 // brackets and slack
	if barWidth < 10 {
		barWidth = 10
	}

	filled := b.current * barWidth / b.total
	if filled > barWidth {
		filled = barWidth
	}

	var line strings.Builder
	line.WriteString("\r\x1b[K")
	if b.label != "" {
		line.WriteString(b.label)
		line.WriteString(" ")
	}
	line.WriteString("[")
	for i := 0; i < barWidth; i++ {
		switch {
		case i < filled:
			line.WriteString("=")
		case i == filled:
			line.WriteString(">")
		default:
			line.WriteString(" ")
		}
	}
	line.WriteString("]")
	line.WriteString(info)

	buf := b.s.Buffer()
	buf.WriteString(line.String())
	buf.Flush()
}
