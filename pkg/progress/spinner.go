// ABOUTME: Cooperative spinner: caller calls Tick, frames advance at most every 60ms
// ABOUTME: Hides the cursor while running and restores it on Stop

package progress

import (
	"time"

	"github.com/signalforge/termkit/pkg/term"
)

// SpinnerStyle selects a frame set.
type SpinnerStyle int

const (
	SpinnerDots SpinnerStyle = iota
	SpinnerLine
	SpinnerArrow
)

// frameInterval is the minimum time between rendered frames.
const frameInterval = 60 * time.Millisecond

var (
	dotsFrames  = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	lineFrames  = []string{"-", "\\", "|", "/"}
	arrowFrames = []string{"←", "↖", "↑", "↗", "→", "↘", "↓", "↙"}
)

// Spinner is an indeterminate activity indicator. It never spawns a
// goroutine; the caller drives animation by calling Tick from its own loop.
type Spinner struct {
	s       *term.Session
	frames  []string
	text    string
	frame   int
	running bool
	last    time.Time

	now func() time.Time // stubbed in tests
}

// NewSpinner creates a stopped spinner with the given style and text.
func NewSpinner(s *term.Session, style SpinnerStyle, text string) *Spinner {
	frames := dotsFrames
	switch style {
	case SpinnerLine:
		frames = lineFrames
	case SpinnerArrow:
		frames = arrowFrames
	}
	return &Spinner{
		s:      s,
		frames: frames,
		text:   text,
		now:    time.Now,
	}
}

// Start hides the cursor and renders the first frame.
func (sp *Spinner) Start() {
	if sp.running {
		return
	}
	sp.running = true
	sp.frame = 0
	sp.s.HideCursor()
	sp.last = sp.now()
	sp.renderFrame()
}

// Tick renders the next frame if at least 60ms have passed since the last
// one. Cheap to call every loop iteration.
func (sp *Spinner) Tick() {
	if !sp.running {
		return
	}
	now := sp.now()
	if now.Sub(sp.last) >= frameInterval {
		sp.renderFrame()
		sp.last = now
	}
}

// SetText replaces the trailing text, re-rendering immediately if running.
func (sp *Spinner) SetText(text string) {
	sp.text = text
	if sp.running {
		sp.renderFrame()
	}
}

// Running reports whether the spinner is animating.
func (sp *Spinner) Running() bool { return sp.running }

// Stop clears the spinner line and restores the cursor. A non-empty message
// leaves a green checkmark line behind.
func (sp *Spinner) Stop(message string) {
	if !sp.running {
		return
	}
	sp.running = false

	buf := sp.s.Buffer()
	buf.WriteString("\r\x1b[K")
	if message != "" {
		buf.WriteString("\x1b[32m✓\x1b[0m " + message + "\n")
	}
	sp.s.ShowCursor()
	buf.Flush()
}

func (sp *Spinner) renderFrame() {
	buf := sp.s.Buffer()
	buf.WriteString("\r\x1b[K")
	buf.WriteString(sp.frames[sp.frame%len(sp.frames)])
	buf.WriteString(" ")
	buf.WriteString(sp.text)
	buf.Flush()
	sp.frame++
}
