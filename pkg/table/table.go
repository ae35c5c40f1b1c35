// ABOUTME: Two-pass table renderer: column sizing with truncation, then box-drawing output
// ABOUTME: Styled cell content never inflates column width (ANSI-stripped measurement)

package table

import (
	"strings"

	"github.com/signalforge/termkit/pkg/style"
	"github.com/signalforge/termkit/pkg/term"
	"github.com/signalforge/termkit/pkg/width"
)

// Alignment controls horizontal cell placement within a column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

// Border selects the box-drawing character set.
type Border int

const (
	BorderNone Border = iota
	BorderAscii
	BorderSingle
	BorderDouble
	BorderRounded
)

// Options configures one render call. Use DefaultOptions as the base; the
// zero value disables padding and borders.
type Options struct {
	Border Border
	// Padding is the blank columns on each side of a cell, clamped to 0-5.
	Padding int
	// Align holds per-column alignments; missing entries default to left.
	Align []Alignment
	// MaxWidth overrides the terminal width when positive and smaller.
	MaxWidth int
	// Truncate shrinks over-wide columns until the table fits.
	Truncate bool
	// HeaderStyle is applied to each header cell after truncation.
	HeaderStyle style.Style
}

// DefaultOptions mirrors the renderer's classic defaults: single-line box,
// one space of padding, truncation on.
func DefaultOptions() Options {
	return Options{
		Border:   BorderSingle,
		Padding:  1,
		Truncate: true,
	}
}

// boxChars is one box-drawing character set.
type boxChars struct {
	h, v                 string
	tl, tr, bl, br       string
	leftT, rightT        string
	topT, bottomT, cross string
}

var (
	boxSingle = boxChars{
		h: "─", v: "│",
		tl: "┌", tr: "┐", bl: "└", br: "┘",
		leftT: "├", rightT: "┤", topT: "┬", bottomT: "┴", cross: "┼",
	}
	boxDouble = boxChars{
		h: "═", v: "║",
		tl: "╔", tr: "╗", bl: "╚", br: "╝",
		leftT: "╠", rightT: "╣", topT: "╦", bottomT: "╩", cross: "╬",
	}
	boxRounded = boxChars{
		h: "─", v: "│",
		tl: "╭", tr: "╮", bl: "╰", br: "╯",
		leftT: "├", rightT: "┤", topT: "┬", bottomT: "┴", cross: "┼",
	}
	boxAscii = boxChars{
		h: "-", v: "|",
		tl: "+", tr: "+", bl: "+", br: "+",
		leftT: "+", rightT: "+", topT: "+", bottomT: "+", cross: "+",
	}
)

func charsFor(b Border) boxChars {
	switch b {
	case BorderAscii:
		return boxAscii
	case BorderDouble:
		return boxDouble
	case BorderRounded:
		return boxRounded
	default:
		return boxSingle
	}
}

// Render draws the table through the session's output buffer at the
// session's detected color level, bounded by the terminal width.
func Render(s *term.Session, headers []string, rows [][]string, opts Options) {
	RenderTo(s.Buffer(), s.Cols(), s.ColorLevel(), headers, rows, opts)
}

// RenderTo draws the table into buf, using termWidth as the fitting bound.
// The buffer is flushed exactly once, after the whole table.
func RenderTo(buf *term.Buffer, termWidth int, level style.Level, headers []string, rows [][]string, opts Options) {
	if len(headers) == 0 {
		return
	}

	padding := opts.Padding
	if padding < 0 {
		padding = 0
	}
	if padding > 5 {
		padding = 5
	}

	maxWidth := termWidth
	if opts.MaxWidth > 0 && opts.MaxWidth < maxWidth {
		maxWidth = opts.MaxWidth
	}

	widths := columnWidths(headers, rows, maxWidth, padding, opts)
	box := charsFor(opts.Border)
	bordered := opts.Border != BorderNone

	if bordered {
		writeRule(buf, box, widths, padding, box.tl, box.topT, box.tr)
	}

	// Header row: always left-aligned, styled after truncation.
	if bordered {
		buf.WriteString(box.v)
	}
	for i, h := range headers {
		cell := fitCell(h, widths[i])
		w := width.StrippedWidth(cell)
		buf.WriteString(strings.Repeat(" ", padding))
		buf.WriteString(opts.HeaderStyle.Apply(cell, level))
		buf.WriteString(strings.Repeat(" ", widths[i]-w+padding))
		if bordered {
			buf.WriteString(box.v)
		}
	}
	buf.WriteString("\n")

	if bordered {
		writeRule(buf, box, widths, padding, box.leftT, box.cross, box.rightT)
	}

	for _, row := range rows {
		writeRow(buf, box, widths, padding, bordered, row, opts.Align)
	}

	if bordered {
		writeRule(buf, box, widths, padding, box.bl, box.bottomT, box.br)
	}

	buf.Flush()
}

// columnWidths is pass 1: the widest stripped content per column, then an
// iterative shrink of the widest column while the table overflows.
func columnWidths(headers []string, rows [][]string, maxWidth, padding int, opts Options) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = width.StrippedWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := width.StrippedWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	total := 0
	if opts.Border != BorderNone {
		total = 1
	}
	for _, w := range widths {
		total += w + padding*2
		if opts.Border != BorderNone {
			total++
		}
	}

	if !opts.Truncate || total <= maxWidth {
		return widths
	}

	// Shrink the single widest column by one until the table fits or every
	// candidate is at the 3-cell floor. Ties go to the first column
	// encountered, for output compatibility.
	excess := total - maxWidth
	for excess > 0 {
		widest, at := 0, 0
		for i, w := range widths {
			if w > widest {
				widest, at = w, i
			}
		}
		if widest <= 3 {
			break
		}
		widths[at]--
		excess--
	}
	return widths
}

// writeRule emits one horizontal border line.
func writeRule(buf *term.Buffer, box boxChars, widths []int, padding int, left, mid, right string) {
	buf.WriteString(left)
	for i, w := range widths {
		buf.WriteString(strings.Repeat(box.h, w+padding*2))
		if i < len(widths)-1 {
			buf.WriteString(mid)
		}
	}
	buf.WriteString(right)
	buf.WriteString("\n")
}

// writeRow emits one data row; short rows are padded with blank cells.
func writeRow(buf *term.Buffer, box boxChars, widths []int, padding int, bordered bool, row []string, align []Alignment) {
	if bordered {
		buf.WriteString(box.v)
	}

	for i := range widths {
		if i >= len(row) {
			buf.WriteString(strings.Repeat(" ", widths[i]+padding*2))
			if bordered {
				buf.WriteString(box.v)
			}
			continue
		}

		cell := fitCell(row[i], widths[i])
		w := width.StrippedWidth(cell)
		space := widths[i] - w

		a := AlignLeft
		if i < len(align) {
			a = align[i]
		}
		padLeft, padRight := padding, padding
		switch a {
		case AlignRight:
			padLeft += space
		case AlignCenter:
			padLeft += space / 2
			padRight += space - space/2
		default:
			padRight += space
		}

		buf.WriteString(strings.Repeat(" ", padLeft))
		buf.WriteString(cell)
		buf.WriteString(strings.Repeat(" ", padRight))
		if bordered {
			buf.WriteString(box.v)
		}
	}

	buf.WriteString("\n")
}

// fitCell truncates s with a trailing ellipsis when its stripped width
// exceeds max. Truncation walks code points accumulating width until three
// cells before the limit.
func fitCell(s string, max int) string {
	if width.StrippedWidth(s) <= max {
		return s
	}
	return truncate(s, max)
}

func truncate(s string, max int) string {
	if max <= 3 {
		return "..."
	}

	budget := max - 3
	w := 0
	i := 0
	for i < len(s) {
		r, size := width.DecodeRune(s[i:])
		rw := width.RuneWidth(r)
		if w+rw > budget {
			break
		}
		w += rw
		i += size
	}
	return s[:i] + "..."
}
