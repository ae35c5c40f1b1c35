// ABOUTME: Prompt loop tests driven through a real pty, keys fed one at a time
// ABOUTME: Skips when no pty can be allocated (restricted build environments)

package prompt

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"

	"github.com/signalforge/termkit/pkg/term"
)

// keyGap paces injected keystrokes so each read cycle sees one key.
const keyGap = 30 * time.Millisecond

// newRawSession binds a raw-mode session to a pty slave and starts a drain
// goroutine so redraw output never fills the pty buffer. The returned output
// func stops the drain and hands back everything rendered so far.
func newRawSession(t *testing.T) (*term.Session, *os.File, func() string) {
	t.Helper()

	master, slave, err := pty.Open()
	if err != nil {
		t.Skipf("cannot allocate pty: %v", err)
	}
	t.Cleanup(func() {
		master.Close()
		slave.Close()
	})

	if err := pty.Setsize(master, &pty.Winsize{Rows: 24, Cols: 80}); err != nil {
		t.Fatalf("Setsize: %v", err)
	}

	s := term.NewWithFiles(slave, slave)
	if err := s.EnterRaw(); err != nil {
		t.Fatalf("EnterRaw: %v", err)
	}
	t.Cleanup(func() { s.ExitRaw() })

	var mu sync.Mutex
	var out bytes.Buffer
	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := master.Read(buf)
			if n > 0 {
				mu.Lock()
				out.Write(buf[:n])
				mu.Unlock()
			}
			if err != nil {
				return
			}
		}
	}()

	output := func() string {
		mu.Lock()
		defer mu.Unlock()
		return out.String()
	}
	return s, master, output
}

// sendKeys writes each chunk to the pty with a gap so the decoder sees them
// as separate reads.
func sendKeys(master *os.File, chunks ...string) {
	go func() {
		for _, c := range chunks {
			time.Sleep(keyGap)
			master.WriteString(c)
		}
	}()
}

func TestSelectEnterOnDefault(t *testing.T) {
	s, master, _ := newRawSession(t)

	sendKeys(master, "\r")
	got, err := Select(s, "Pick one:", []string{"red", "green", "blue"}, 1)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got != "green" {
		t.Errorf("got %q, want %q", got, "green")
	}
}

func TestSelectArrowWrap(t *testing.T) {
	s, master, _ := newRawSession(t)

	// Up from index 0 wraps to the last option.
	sendKeys(master, "\x1b[A", "\r")
	got, err := Select(s, "Pick:", []string{"a", "b", "c"}, 0)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got != "c" {
		t.Errorf("wrap up: got %q, want %q", got, "c")
	}
}

func TestSelectDownAndAccept(t *testing.T) {
	s, master, output := newRawSession(t)

	sendKeys(master, "\x1b[B", "\x1b[B", "\r")
	got, err := Select(s, "Pick:", []string{"a", "b", "c"}, 0)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got != "c" {
		t.Errorf("got %q, want %q", got, "c")
	}
	if !strings.Contains(output(), "\x1b[36m● a  ←\x1b[0m") {
		t.Errorf("initial bullet highlight missing:\n%q", output())
	}
}

func TestSelectCancel(t *testing.T) {
	tests := []struct {
		name string
		keys string
	}{
		{"esc", "\x1b"},
		{"ctrl+c", "\x03"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, master, _ := newRawSession(t)
			sendKeys(master, tt.keys)
			_, err := Select(s, "Pick:", []string{"a", "b"}, 0)
			if !errors.Is(err, ErrCancelled) {
				t.Errorf("err = %v, want ErrCancelled", err)
			}
		})
	}
}

func TestSelectFuzzyFilter(t *testing.T) {
	s, master, output := newRawSession(t)

	// Typing "gr" narrows to "green"; enter takes the top match.
	sendKeys(master, "g", "r", "\r")
	got, err := Select(s, "Pick:", []string{"red", "green", "blue"}, 0)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got != "green" {
		t.Errorf("got %q, want %q", got, "green")
	}
	if !strings.Contains(output(), "filter: gr") {
		t.Errorf("filter line missing:\n%q", output())
	}
}

func TestSelectBackspaceWidens(t *testing.T) {
	s, master, _ := newRawSession(t)

	// "z" matches nothing; backspace restores the full list.
	sendKeys(master, "z", "\x7f", "\r")
	got, err := Select(s, "Pick:", []string{"red", "green"}, 0)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got != "red" {
		t.Errorf("got %q, want %q", got, "red")
	}
}

func TestSelectNoOptions(t *testing.T) {
	s, _, _ := newRawSession(t)
	_, err := Select(s, "Pick:", nil, 0)
	if !errors.Is(err, ErrNoOptions) {
		t.Errorf("err = %v, want ErrNoOptions", err)
	}
}

func TestSelectRequiresRaw(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	s := term.NewWithFiles(r, w)
	if _, err := Select(s, "Pick:", []string{"a"}, 0); err == nil {
		t.Error("expected error outside raw mode")
	}
}

func TestMultiSelectToggle(t *testing.T) {
	s, master, output := newRawSession(t)

	// Toggle "a", move down, toggle "b", accept.
	sendKeys(master, " ", "\x1b[B", " ", "\r")
	got, err := MultiSelect(s, "Pick some:", []string{"a", "b", "c"}, nil)
	if err != nil {
		t.Fatalf("MultiSelect: %v", err)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("got %v, want [a b]", got)
	}
	if !strings.Contains(output(), "(space to toggle, enter to confirm)") {
		t.Errorf("usage hint missing:\n%q", output())
	}
	if !strings.Contains(output(), "\x1b[32m☑\x1b[0m") {
		t.Errorf("checked box missing:\n%q", output())
	}
}

func TestMultiSelectDefaultsAndUntoggle(t *testing.T) {
	s, master, _ := newRawSession(t)

	// "a" starts checked; space unchecks it, leaving only default "c".
	sendKeys(master, " ", "\r")
	got, err := MultiSelect(s, "Pick:", []string{"a", "b", "c"}, []int{0, 2, 99, -1})
	if err != nil {
		t.Fatalf("MultiSelect: %v", err)
	}
	if len(got) != 1 || got[0] != "c" {
		t.Errorf("got %v, want [c]", got)
	}
}

func TestMultiSelectCancel(t *testing.T) {
	s, master, _ := newRawSession(t)

	sendKeys(master, " ", "\x1b")
	got, err := MultiSelect(s, "Pick:", []string{"a", "b"}, nil)
	if !errors.Is(err, ErrCancelled) {
		t.Errorf("err = %v, want ErrCancelled", err)
	}
	if got != nil {
		t.Errorf("cancelled result = %v, want nil", got)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name    string
		def     bool
		keys    []string
		want    bool
		wantErr error
	}{
		{"explicit yes", false, []string{"y"}, true, nil},
		{"explicit no", true, []string{"n"}, false, nil},
		{"enter takes default true", true, []string{"\r"}, true, nil},
		{"enter takes default false", false, []string{"\r"}, false, nil},
		{"ignores other keys", false, []string{"x", "7", "Y"}, true, nil},
		{"esc cancels", true, []string{"\x1b"}, false, ErrCancelled},
		{"ctrl+c cancels", true, []string{"\x03"}, false, ErrCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, master, output := newRawSession(t)
			sendKeys(master, tt.keys...)
			got, err := Confirm(s, "Proceed?", tt.def)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if tt.def && !strings.Contains(output(), "[Y/n]") {
				t.Errorf("default-yes hint missing:\n%q", output())
			}
			if !tt.def && !strings.Contains(output(), "[y/N]") {
				t.Errorf("default-no hint missing:\n%q", output())
			}
		})
	}
}
