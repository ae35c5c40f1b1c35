// ABOUTME: Style assembly: combines color fragments and SGR attributes into one escape prefix
// ABOUTME: Empty style sets return the input text unchanged so callers can compare equality

package style

import "strings"

// Style describes the visual treatment of a span of text. The zero value
// applies nothing.
type Style struct {
	FG Color
	BG Color

	Bold      bool
	Dim       bool
	Italic    bool
	Underline bool
	Blink     bool
	Reverse   bool
}

// attribute SGR codes, emitted in this fixed order after fg and bg.
var attrCodes = []struct {
	code string
	on   func(Style) bool
}{
	{"1", func(s Style) bool { return s.Bold }},
	{"2", func(s Style) bool { return s.Dim }},
	{"3", func(s Style) bool { return s.Italic }},
	{"4", func(s Style) bool { return s.Underline }},
	{"5", func(s Style) bool { return s.Blink }},
	{"7", func(s Style) bool { return s.Reverse }},
}

// Codes returns the joined SGR parameter list for s at the given capability
// level: foreground first, then background, then attributes. Colors that
// fail to resolve contribute nothing; they never abort the render.
func (s Style) Codes(level Level) string {
	var parts []string

	if frag, err := s.FG.Resolve(false, level); err == nil && frag != "" {
		parts = append(parts, frag)
	}
	if frag, err := s.BG.Resolve(true, level); err == nil && frag != "" {
		parts = append(parts, frag)
	}
	for _, a := range attrCodes {
		if a.on(s) {
			parts = append(parts, a.code)
		}
	}

	return strings.Join(parts, ";")
}

// Apply wraps text in ESC[<codes>m ... ESC[0m. When the style contributes no
// codes at all, text is returned verbatim with no escape wrapping.
func (s Style) Apply(text string, level Level) string {
	codes := s.Codes(level)
	if codes == "" {
		return text
	}
	return "\x1b[" + codes + "m" + text + "\x1b[0m"
}
