// ABOUTME: Semantic color palette mapping UI roles to colors
// ABOUTME: Default palette matches the built-in renderer colors

package style

// Palette maps semantic roles to colors. Renderers look colors up by role so
// hosts can swap palettes without touching render code.
type Palette struct {
	Primary   Color
	Muted     Color
	Accent    Color
	Success   Color
	Warning   Color
	Error     Color
	Info      Color
	Border    Color
	Selection Color
}

// Theme holds a named palette.
type Theme struct {
	Name    string
	Palette Palette
}

// DefaultPalette returns the palette used when no theme file is loaded.
func DefaultPalette() Palette {
	return Palette{
		Primary:   Named("default"),
		Muted:     Named("bright_black"),
		Accent:    Named("cyan"),
		Success:   Named("green"),
		Warning:   Named("yellow"),
		Error:     Named("red"),
		Info:      Named("cyan"),
		Border:    Named("bright_black"),
		Selection: Named("cyan"),
	}
}
