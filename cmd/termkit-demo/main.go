// ABOUTME: Demo binary exercising the full surface: raw mode, styling, tables,
// ABOUTME: progress, spinner, prompts, and key echo until q or ctrl+c

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/signalforge/termkit/internal/log"
	"github.com/signalforge/termkit/pkg/key"
	"github.com/signalforge/termkit/pkg/progress"
	"github.com/signalforge/termkit/pkg/prompt"
	"github.com/signalforge/termkit/pkg/style"
	"github.com/signalforge/termkit/pkg/table"
	"github.com/signalforge/termkit/pkg/term"
)

func main() {
	themePath := flag.String("theme", "", "YAML theme file")
	debug := flag.Bool("debug", false, "enable debug logging to stderr")
	flag.Parse()

	if *debug {
		log.SetLevel(log.LevelDebug)
	}

	theme := style.Theme{Name: "default", Palette: style.DefaultPalette()}
	if *themePath != "" {
		loaded, err := style.LoadTheme(*themePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: loading theme: %v\n", err)
			os.Exit(1)
		}
		theme = *loaded
	}

	s := term.New()
	defer term.RestoreOnPanic(s)

	if err := s.EnterRaw(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer s.ExitRaw()

	if err := run(s, theme); err != nil {
		s.ExitRaw()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(s *term.Session, theme style.Theme) error {
	buf := s.Buffer()
	s.Clear()

	title := style.Style{FG: theme.Palette.Primary, Bold: true}
	buf.WriteString(s.Style("termkit demo", title))
	line(buf, "")
	line(buf, fmt.Sprintf("terminal: %dx%d, colors: %s", s.Cols(), rows(s), colorName(s)))
	line(buf, "")
	buf.Flush()

	renderTable(s, theme)
	line(buf, "")
	buf.Flush()

	runProgress(s)
	runSpinner(s)
	line(buf, "")
	buf.Flush()

	if err := runPrompts(s); err != nil {
		return err
	}

	return echoKeys(s)
}

func renderTable(s *term.Session, theme style.Theme) {
	opts := table.DefaultOptions()
	opts.Border = table.BorderRounded
	opts.HeaderStyle = style.Style{FG: theme.Palette.Accent, Bold: true}
	opts.Align = []table.Alignment{table.AlignRight, table.AlignLeft, table.AlignCenter}

	table.Render(s,
		[]string{"ID", "Name", "Status"},
		[][]string{
			{"1", "ingest", s.Style("running", style.Style{FG: theme.Palette.Success})},
			{"2", "compact", s.Style("blocked", style.Style{FG: theme.Palette.Warning})},
			{"3", "flush", "idle"},
		},
		opts)
}

func runProgress(s *term.Session) {
	bar := progress.NewBar(s, 50, "download")
	for i := 0; i < 50; i++ {
		time.Sleep(20 * time.Millisecond)
		bar.Advance(1)
	}
	bar.Finish("downloaded 50 files")
	s.Buffer().WriteString("\r")
	s.Buffer().Flush()
}

func runSpinner(s *term.Session) {
	sp := progress.NewSpinner(s, progress.SpinnerDots, "crunching")
	sp.Start()
	deadline := time.Now().Add(1500 * time.Millisecond)
	for time.Now().Before(deadline) {
		sp.Tick()
		time.Sleep(10 * time.Millisecond)
		if time.Until(deadline) < 500*time.Millisecond {
			sp.SetText("almost there")
		}
	}
	sp.Stop("crunched")
	s.Buffer().WriteString("\r")
	s.Buffer().Flush()
}

func runPrompts(s *term.Session) error {
	choice, err := prompt.Select(s, "Favorite transport:", []string{"tcp", "udp", "unix socket"}, 0)
	if err != nil && err != prompt.ErrCancelled {
		return err
	}
	buf := s.Buffer()
	if err == nil {
		line(buf, "picked: "+choice)
	} else {
		line(buf, "selection cancelled")
	}
	buf.Flush()

	ok, err := prompt.Confirm(s, "Echo keys now?", true)
	if err != nil && err != prompt.ErrCancelled {
		return err
	}
	if !ok {
		return nil
	}
	line(buf, "press keys, q or ctrl+c to quit")
	buf.Flush()
	return nil
}

func echoKeys(s *term.Session) error {
	buf := s.Buffer()
	for {
		k, err := s.ReadKey(-1)
		if err != nil {
			return err
		}
		switch {
		case k.Type == key.Rune && k.Rune == 'q':
			line(buf, "bye")
			buf.Flush()
			return nil
		case k.Type == key.Ctrl && k.Rune == 'c':
			line(buf, "bye")
			buf.Flush()
			return nil
		case k.Type == key.Rune:
			line(buf, fmt.Sprintf("key: %s %q", k.Name(), k.Rune))
		default:
			line(buf, "key: "+k.Name())
		}
		buf.Flush()
	}
}

// line writes s followed by CRLF; raw mode has OPOST off, so bare \n would
// not return the carriage.
func line(buf *term.Buffer, s string) {
	buf.WriteString(s)
	buf.WriteString("\r\n")
}

func rows(s *term.Session) int {
	_, r := s.Size()
	return r
}

func colorName(s *term.Session) string {
	switch s.ColorLevel() {
	case style.LevelTrueColor:
		return "truecolor"
	case style.Level256:
		return "256"
	case style.Level16:
		return "16"
	default:
		return "none"
	}
}
