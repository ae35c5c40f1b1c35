// ABOUTME: ANSI CSI escape sequence stripping for width measurement
// ABOUTME: Skips ESC [ ... <final> where the final byte is alphabetic or ~

package width

import "strings"

// StripANSI removes ANSI CSI sequences from s. Only the CSI form
// (ESC [ params final) is recognized; that is the only form the styling
// layer emits.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, '\x1b') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '[' {
			i = skipCSI(s, i)
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// skipCSI advances past a CSI sequence starting at s[i] (which must be ESC).
// The sequence ends at the first alphabetic byte or '~'.
func skipCSI(s string, i int) int {
	i += 2 // ESC [
	for i < len(s) && !isFinal(s[i]) {
		i++
	}
	if i < len(s) {
		i++ // consume the final byte
	}
	return i
}

func isFinal(b byte) bool {
	return b == '~' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
