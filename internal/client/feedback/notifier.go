package feedback

import (
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Notifier shows a single transient message per user action.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// ConsoleNotifier prints notices to a writer, coloured when the writer is a
// terminal.
type ConsoleNotifier struct {
	mu      sync.Mutex
	w       io.Writer
	success *color.Color
	failure *color.Color
}

func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	n := &ConsoleNotifier{
		w:       w,
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed, color.Bold),
	}
	if !IsTerminal(w) {
		n.success.DisableColor()
		n.failure.DisableColor()
	}
	return n
}

func (n *ConsoleNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = n.success.Fprintln(n.w, "✔ "+msg)
}

func (n *ConsoleNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = n.failure.Fprintln(n.w, "✖ "+msg)
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
