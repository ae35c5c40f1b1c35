// ABOUTME: Decodes one raw input chunk read in raw mode into a Key event
// ABOUTME: Handles CSI and SS3 escape sequences, control bytes, and UTF-8 runes

package key

import "github.com/signalforge/termkit/pkg/width"

// csiFinal maps single final bytes of CSI sequences to keys.
var csiFinal = map[byte]Key{
	'A': {Type: Up},
	'B': {Type: Down},
	'C': {Type: Right},
	'D': {Type: Left},
	'H': {Type: Home},
	'F': {Type: End},
}

// csiTilde maps the numeric code of ESC [ <n> ~ sequences to keys.
var csiTilde = map[byte]Key{
	'1': {Type: Home},
	'2': {Type: Insert},
	'3': {Type: Delete},
	'4': {Type: End},
	'5': {Type: PageUp},
	'6': {Type: PageDown},
}

// csiFn1 maps the second digit of ESC [ 1 <d> ~ sequences to F5-F8.
var csiFn1 = map[byte]int{'5': 5, '6': 6, '7': 7, '8': 8}

// csiFn2 maps the second digit of ESC [ 2 <d> ~ sequences to F9-F12.
// 22~ carries no key on VT-style terminals and falls through to Esc.
var csiFn2 = map[byte]int{'0': 9, '1': 10, '3': 11, '4': 12}

// ss3Final maps ESC O <final> function-key sequences to F1-F4.
var ss3Final = map[byte]Key{
	'P': {Type: Function, Num: 1},
	'Q': {Type: Function, Num: 2},
	'R': {Type: Function, Num: 3},
	'S': {Type: Function, Num: 4},
}

// Decode classifies one chunk of raw bytes as read from the terminal in raw
// mode. It decodes exactly one key: any bytes in buf beyond the first decoded
// key are not examined. An escape sequence split across reads is not
// reassembled; the leading fragment collapses to Esc.
func Decode(buf []byte) Key {
	if len(buf) == 0 {
		return Key{Type: Esc}
	}

	if buf[0] == 0x1b {
		return decodeEscape(buf)
	}

	// Control bytes below 0x20.
	if buf[0] < 0x20 {
		switch buf[0] {
		case '\r', '\n':
			return Key{Type: Enter}
		case '\t':
			return Key{Type: Tab}
		case '\b':
			return Key{Type: Backspace}
		default:
			// Signed arithmetic: 0x00 and 0x1c-0x1f sit below/above the
			// ctrl+letter block and map to `, |, }, ~, DEL rather than
			// wrapping the byte around.
			return Key{Type: Ctrl, Rune: rune(int(buf[0]) - 1 + 'a')}
		}
	}

	if buf[0] == 0x7f {
		return Key{Type: Backspace}
	}

	r, _ := width.DecodeRune(string(buf))
	return Key{Type: Rune, Rune: r}
}

// decodeEscape handles chunks whose first byte is ESC. Anything it does not
// recognize collapses to a bare Esc, matching what a user pressing the key
// would expect.
func decodeEscape(buf []byte) Key {
	if len(buf) == 1 {
		return Key{Type: Esc}
	}

	switch buf[1] {
	case '[':
		if len(buf) < 3 {
			return Key{Type: Esc}
		}
		// ESC [ 1 <d> ~ -> F5-F8, ESC [ 2 <d> ~ -> F9-F12.
		if len(buf) >= 5 && buf[4] == '~' {
			if buf[2] == '1' {
				if n, ok := csiFn1[buf[3]]; ok {
					return Key{Type: Function, Num: n}
				}
			}
			if buf[2] == '2' {
				if n, ok := csiFn2[buf[3]]; ok {
					return Key{Type: Function, Num: n}
				}
			}
		}
		// ESC [ <digit> ~
		if len(buf) >= 4 && buf[3] == '~' {
			if k, ok := csiTilde[buf[2]]; ok {
				return k
			}
		}
		if k, ok := csiFinal[buf[2]]; ok {
			return k
		}
	case 'O':
		if len(buf) >= 3 {
			if k, ok := ss3Final[buf[2]]; ok {
				return k
			}
		}
	}

	return Key{Type: Esc}
}
