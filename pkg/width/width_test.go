// ABOUTME: Tests for DisplayWidth, RuneWidth, DecodeRune, and ANSI stripping
// ABOUTME: Covers ASCII, CJK, combining marks, emoji, and cache eviction

package width

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDisplayWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "empty string", input: "", want: 0},
		{name: "ascii", input: "hello", want: 5},
		{name: "single ascii", input: "A", want: 1},
		{name: "cjk", input: "中", want: 2},
		{name: "cjk pair", input: "你好", want: 4},
		{name: "hangul", input: "한", want: 2},
		{name: "fullwidth", input: "Ａ", want: 2},
		{name: "combining accent", input: "é", want: 1},
		{name: "emoji", input: "👋", want: 2},
		{name: "mixed", input: "a中b", want: 4},
		{name: "zero width joiner alone", input: "a‍b", want: 2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := DisplayWidth(tt.input)
			if got != tt.want {
				t.Errorf("DisplayWidth(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestRuneWidth(t *testing.T) {
	t.Parallel()

	for r := rune(0x20); r < 0x7F; r++ {
		if got := RuneWidth(r); got != 1 {
			t.Errorf("RuneWidth(%q) = %d, want 1", r, got)
		}
	}
	for _, r := range []rune{0x00, 0x07, 0x1B, 0x1F, 0x7F} {
		if got := RuneWidth(r); got != 0 {
			t.Errorf("RuneWidth(%#x) = %d, want 0", r, got)
		}
	}
	if got := RuneWidth('中'); got != 2 {
		t.Errorf("RuneWidth(中) = %d, want 2", got)
	}
	if got := RuneWidth('́'); got != 0 {
		t.Errorf("RuneWidth(combining acute) = %d, want 0", got)
	}
}

func TestDecodeRune(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantRune rune
		wantSize int
	}{
		{name: "ascii", input: "abc", wantRune: 'a', wantSize: 1},
		{name: "two byte", input: "é", wantRune: 'é', wantSize: 2},
		{name: "three byte", input: "中x", wantRune: '中', wantSize: 3},
		{name: "four byte", input: "👋", wantRune: '👋', wantSize: 4},
		{name: "invalid lead", input: "\xffabc", wantRune: utf8.RuneError, wantSize: 1},
		{name: "truncated sequence", input: "\xe4\xb8", wantRune: utf8.RuneError, wantSize: 1},
		{name: "empty", input: "", wantRune: utf8.RuneError, wantSize: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, size := DecodeRune(tt.input)
			if r != tt.wantRune || size != tt.wantSize {
				t.Errorf("DecodeRune(%q) = (%q, %d), want (%q, %d)",
					tt.input, r, size, tt.wantRune, tt.wantSize)
			}
		})
	}
}

func TestStripANSI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "no escapes", input: "plain", want: "plain"},
		{name: "sgr", input: "\x1b[31mred\x1b[0m", want: "red"},
		{name: "multi param", input: "\x1b[1;4;38;5;208mX\x1b[0m", want: "X"},
		{name: "tilde final", input: "\x1b[3~after", want: "after"},
		{name: "only escape", input: "\x1b[2J", want: ""},
		{name: "unterminated", input: "text\x1b[31", want: "text"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := StripANSI(tt.input)
			if got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStrippedWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "styled ascii", input: "\x1b[32mok\x1b[0m", want: 2},
		{name: "styled cjk", input: "\x1b[1m中\x1b[0m", want: 2},
		{name: "plain equals display", input: "hello", want: 5},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := StrippedWidth(tt.input)
			if got != tt.want {
				t.Errorf("StrippedWidth(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestCacheEviction(t *testing.T) {
	t.Parallel()

	c := newCache(3)
	c.put("a", 1)
	c.put("b", 2)
	c.put("c", 3)

	if v, ok := c.get("a"); !ok || v != 1 {
		t.Fatalf("get(a) = %d, %v; want 1, true", v, ok)
	}

	// "b" is now least recently used and should be evicted.
	c.put("d", 4)
	if _, ok := c.get("b"); ok {
		t.Error("expected b to be evicted")
	}
	if v, ok := c.get("d"); !ok || v != 4 {
		t.Errorf("get(d) = %d, %v; want 4, true", v, ok)
	}
}

func TestDisplayWidthLongUnicode(t *testing.T) {
	t.Parallel()

	s := strings.Repeat("中", 100)
	if got := DisplayWidth(s); got != 200 {
		t.Errorf("DisplayWidth(repeat 中) = %d, want 200", got)
	}
	// Second call exercises the cache path.
	if got := DisplayWidth(s); got != 200 {
		t.Errorf("cached DisplayWidth = %d, want 200", got)
	}
}
