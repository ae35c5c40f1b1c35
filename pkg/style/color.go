// ABOUTME: Color value parsing and SGR fragment resolution with capability degradation
// ABOUTME: Named palette, hex, and RGB colors degrade TrueColor -> 256 -> 16 -> none

package style

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor reports an unrecognized color name or malformed hex value.
var ErrInvalidColor = errors.New("invalid color")

// Level is the color capability tier of the target terminal.
type Level int

const (
	LevelNone Level = iota
	Level16
	Level256
	LevelTrueColor
)

// colorKind tags the parsed representation of a color value.
type colorKind int

const (
	kindNone colorKind = iota
	kindNamed
	kindRGB
)

// Color is a parsed color value: a palette name or an RGB triple.
// The zero value is "no color" and resolves to nothing.
type Color struct {
	kind    colorKind
	name    string
	r, g, b uint8
}

// namedCodes maps palette names to their base 16 SGR codes (fg, bg).
var namedCodes = map[string][2]int{
	"black":          {30, 40},
	"red":            {31, 41},
	"green":          {32, 42},
	"yellow":         {33, 43},
	"blue":           {34, 44},
	"magenta":        {35, 45},
	"cyan":           {36, 46},
	"white":          {37, 47},
	"bright_black":   {90, 100},
	"bright_red":     {91, 101},
	"bright_green":   {92, 102},
	"bright_yellow":  {93, 103},
	"bright_blue":    {94, 104},
	"bright_magenta": {95, 105},
	"bright_cyan":    {96, 106},
	"bright_white":   {97, 107},
	"default":        {39, 49},
}

// Named returns the palette color with the given name. The name is validated
// at resolve time, not here, so unknown names degrade instead of aborting.
func Named(name string) Color {
	return Color{kind: kindNamed, name: strings.ToLower(name)}
}

// RGB returns an explicit 24-bit color.
func RGB(r, g, b uint8) Color {
	return Color{kind: kindRGB, r: r, g: g, b: b}
}

// Parse converts a color specification string into a Color. Accepted forms
// are palette names ("red", "bright_cyan", "default") and hex values
// ("#RGB" or "#RRGGBB"). The error surfaces only at resolve time.
func Parse(spec string) (Color, error) {
	if spec == "" {
		return Color{}, nil
	}
	if strings.HasPrefix(spec, "#") {
		if len(spec) != 4 && len(spec) != 7 {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, spec)
		}
		c, err := colorful.Hex(spec)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, spec)
		}
		r, g, b := c.RGB255()
		return RGB(r, g, b), nil
	}
	name := strings.ToLower(spec)
	if _, ok := namedCodes[name]; !ok {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, spec)
	}
	return Named(name), nil
}

// IsZero reports whether c carries no color.
func (c Color) IsZero() bool {
	return c.kind == kindNone
}

// Resolve returns the SGR parameter fragment for c at the given capability
// level, without the surrounding ESC [ ... m. Background colors use the
// 40/48 parameter family. LevelNone resolves every color to the empty
// fragment so styled output compares equal to plain text.
func (c Color) Resolve(bg bool, level Level) (string, error) {
	if c.kind == kindNone || level == LevelNone {
		return "", nil
	}

	switch c.kind {
	case kindNamed:
		codes, ok := namedCodes[c.name]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrInvalidColor, c.name)
		}
		if bg {
			return fmt.Sprintf("%d", codes[1]), nil
		}
		return fmt.Sprintf("%d", codes[0]), nil

	case kindRGB:
		return resolveRGB(int(c.r), int(c.g), int(c.b), bg, level), nil
	}

	return "", ErrInvalidColor
}

// resolveRGB degrades an RGB triple to the terminal's capability:
// 24-bit SGR, the 6x6x6 color cube, or the nearest of the 16 basic colors.
func resolveRGB(r, g, b int, bg bool, level Level) string {
	base := 38
	if bg {
		base = 48
	}

	switch {
	case level >= LevelTrueColor:
		return fmt.Sprintf("%d;2;%d;%d;%d", base, r, g, b)
	case level >= Level256:
		idx := 16 + (r/51)*36 + (g/51)*6 + (b / 51)
		return fmt.Sprintf("%d;5;%d", base, idx)
	default:
		bright := r+g+b > 384
		idx := 0
		if r > 127 {
			idx |= 1
		}
		if g > 127 {
			idx |= 2
		}
		if b > 127 {
			idx |= 4
		}
		code := 30 + idx
		if bg {
			code = 40 + idx
		}
		if bright {
			code += 60
		}
		return fmt.Sprintf("%d", code)
	}
}
