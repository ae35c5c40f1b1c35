// ABOUTME: Interactive select / multi-select / confirm loops over a raw-mode session
// ABOUTME: Redraws in place with cursor-up, cancels on esc or ctrl+c

package prompt

import (
	"errors"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/signalforge/termkit/pkg/key"
	"github.com/signalforge/termkit/pkg/term"
)

var (
	// ErrCancelled is returned when the user aborts with esc or ctrl+c.
	ErrCancelled = errors.New("prompt: cancelled")
	// ErrNoOptions is returned when there is nothing to choose from.
	ErrNoOptions = errors.New("prompt: no options")
)

// Select shows a bullet list and returns the chosen option. Arrow keys move
// with wraparound, enter accepts, esc or ctrl+c cancels. Typing narrows the
// list with fuzzy matching; backspace widens it again. Requires raw mode.
func Select(s *term.Session, prompt string, options []string, def int) (string, error) {
	if len(options) == 0 {
		return "", ErrNoOptions
	}
	if def < 0 {
		def = 0
	}
	if def >= len(options) {
		def = len(options) - 1
	}

	buf := s.Buffer()
	s.HideCursor()
	defer s.ShowCursor()

	buf.WriteString(prompt)
	buf.WriteString("\n")

	selected := def
	query := ""
	visible := allIndices(len(options))

	// The redraw region has a fixed height: one filter line plus one line
	// per option, blanked when filtered out.
	region := len(options) + 1

	for {
		drawFilter(buf, query)
		for line := 0; line < len(options); line++ {
			buf.WriteString("\r\x1b[K")
			if line < len(visible) {
				i := visible[line]
				if line == selected {
					buf.WriteString("  \x1b[36m● " + options[i] + "  ←\x1b[0m")
				} else {
					buf.WriteString("  ○ " + options[i])
				}
			}
			buf.WriteString("\n")
		}
		buf.Flush()

		k, err := s.ReadKey(-1)
		if err != nil {
			return "", err
		}

		switch {
		case k.Type == key.Up:
			if len(visible) > 0 {
				selected = (selected - 1 + len(visible)) % len(visible)
			}
		case k.Type == key.Down:
			if len(visible) > 0 {
				selected = (selected + 1) % len(visible)
			}
		case k.Type == key.Enter:
			if len(visible) == 0 {
				break
			}
			return options[visible[selected]], nil
		case k.Type == key.Esc, k.Type == key.Ctrl && k.Rune == 'c':
			return "", ErrCancelled
		case k.Type == key.Backspace:
			if query != "" {
				query = trimLastRune(query)
				visible = filterOptions(query, options)
				selected = clampIndex(selected, len(visible))
			}
		case k.Type == key.Rune && k.Rune >= ' ':
			query += string(k.Rune)
			visible = filterOptions(query, options)
			selected = 0
		}

		s.CursorUp(region)
	}
}

// MultiSelect shows a checkbox list; space toggles, enter accepts, esc or
// ctrl+c cancels. defaults holds pre-checked option indices. The result
// keeps option order. Requires raw mode.
func MultiSelect(s *term.Session, prompt string, options []string, defaults []int) ([]string, error) {
	if len(options) == 0 {
		return nil, ErrNoOptions
	}

	checked := make([]bool, len(options))
	for _, i := range defaults {
		if i >= 0 && i < len(options) {
			checked[i] = true
		}
	}

	buf := s.Buffer()
	s.HideCursor()
	defer s.ShowCursor()

	buf.WriteString(prompt)
	buf.WriteString(" (space to toggle, enter to confirm)\n")

	cursor := 0
	for {
		for i, opt := range options {
			buf.WriteString("\r\x1b[K  ")
			if checked[i] {
				buf.WriteString("\x1b[32m☑\x1b[0m ")
			} else {
				buf.WriteString("☐ ")
			}
			if i == cursor {
				buf.WriteString("\x1b[4m" + opt + "\x1b[0m ←")
			} else {
				buf.WriteString(opt)
			}
			buf.WriteString("\n")
		}
		buf.Flush()

		k, err := s.ReadKey(-1)
		if err != nil {
			return nil, err
		}

		switch {
		case k.Type == key.Up:
			cursor = (cursor - 1 + len(options)) % len(options)
		case k.Type == key.Down:
			cursor = (cursor + 1) % len(options)
		case k.Type == key.Rune && k.Rune == ' ':
			checked[cursor] = !checked[cursor]
		case k.Type == key.Enter:
			var out []string
			for i, opt := range options {
				if checked[i] {
					out = append(out, opt)
				}
			}
			return out, nil
		case k.Type == key.Esc, k.Type == key.Ctrl && k.Rune == 'c':
			return nil, ErrCancelled
		}

		s.CursorUp(len(options))
	}
}

// Confirm asks a yes/no question. y and n answer directly, enter takes the
// default, esc or ctrl+c cancels. Requires raw mode.
func Confirm(s *term.Session, question string, def bool) (bool, error) {
	buf := s.Buffer()

	hint := " [y/N] "
	if def {
		hint = " [Y/n] "
	}
	buf.WriteString(question)
	buf.WriteString(hint)
	buf.Flush()

	for {
		k, err := s.ReadKey(-1)
		if err != nil {
			return false, err
		}

		switch {
		case k.Type == key.Rune && (k.Rune == 'y' || k.Rune == 'Y'):
			buf.WriteString("y\n")
			buf.Flush()
			return true, nil
		case k.Type == key.Rune && (k.Rune == 'n' || k.Rune == 'N'):
			buf.WriteString("n\n")
			buf.Flush()
			return false, nil
		case k.Type == key.Enter:
			if def {
				buf.WriteString("y\n")
			} else {
				buf.WriteString("n\n")
			}
			buf.Flush()
			return def, nil
		case k.Type == key.Esc, k.Type == key.Ctrl && k.Rune == 'c':
			buf.WriteString("\n")
			buf.Flush()
			return false, ErrCancelled
		}
	}
}

func drawFilter(buf *term.Buffer, query string) {
	buf.WriteString("\r\x1b[K")
	if query != "" {
		buf.WriteString("  \x1b[2mfilter: " + query + "\x1b[0m")
	}
	buf.WriteString("\n")
}

// filterOptions ranks options against query; an empty query shows all.
func filterOptions(query string, options []string) []int {
	if query == "" {
		return allIndices(len(options))
	}
	matches := fuzzy.Find(query, options)
	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.Index
	}
	return out
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func clampIndex(i, n int) int {
	if n == 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func trimLastRune(s string) string {
	if i := strings.LastIndexFunc(s, func(rune) bool { return true }); i >= 0 {
		return s[:i]
	}
	return s
}
