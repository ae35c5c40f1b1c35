// ABOUTME: Signal interplay: resize flagging, terminate restore, suspend/resume handling
// ABOUTME: The watcher goroutine only sets an atomic flag for resizes; heavy work stays on the caller

//go:build unix

package term

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/signalforge/termkit/internal/log"
)

// signalWatcher is the Go analogue of async signal handlers. The delivery
// goroutine obeys the same discipline a C handler would: a window-change
// only sets pendingResize (consumed later by Size, on the caller's own
// control flow), while terminate and suspend signals run the minimal
// allocation-free termios restore before re-raising themselves with their
// default disposition.
type signalWatcher struct {
	session       *Session
	ch            chan os.Signal
	done          chan struct{}
	pendingResize atomic.Bool
}

func newSignalWatcher(s *Session) *signalWatcher {
	return &signalWatcher{
		session: s,
		ch:      make(chan os.Signal, 8),
		done:    make(chan struct{}),
	}
}

func (w *signalWatcher) start() {
	signal.Notify(w.ch,
		syscall.SIGWINCH,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGTSTP,
		syscall.SIGCONT,
	)
	go w.loop()
}

// stop detaches the watcher. signal.Stop restores whatever disposition was
// in effect before Notify, so a host's own handlers are not clobbered.
func (w *signalWatcher) stop() {
	signal.Stop(w.ch)
	close(w.done)
}

func (w *signalWatcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case sig := <-w.ch:
			w.handle(sig)
		}
	}
}

func (w *signalWatcher) handle(sig os.Signal) {
	switch sig {
	case syscall.SIGWINCH:
		// Flag only. Re-querying dimensions and invoking the resize
		// callback happen on the next Size call.
		w.pendingResize.Store(true)

	case syscall.SIGINT, syscall.SIGTERM:
		log.Debug("terminating on %v, restoring terminal", sig)
		w.session.terminateRestore()
		signal.Reset(sig)
		w.reraise(sig)

	case syscall.SIGTSTP:
		// Restore cooked settings but leave the flags alone so SIGCONT
		// knows raw mode must be re-applied.
		w.session.mu.Lock()
		w.session.restoreCookedLocked()
		w.session.mu.Unlock()
		signal.Reset(syscall.SIGTSTP)
		w.reraise(syscall.SIGTSTP)

	case syscall.SIGCONT:
		w.session.mu.Lock()
		w.session.reapplyRawLocked()
		w.session.mu.Unlock()
		// The suspend path reset SIGTSTP to its default disposition;
		// re-register it for the next suspend.
		signal.Notify(w.ch, syscall.SIGTSTP)
		log.Debug("resumed, raw mode re-applied")
	}
}

func (w *signalWatcher) reraise(sig os.Signal) {
	s, ok := sig.(syscall.Signal)
	if !ok {
		return
	}
	_ = unix.Kill(unix.Getpid(), s)
}
