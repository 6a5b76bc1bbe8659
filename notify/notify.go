// Package notify delivers user-facing notifications. Notifiers are passed to
// the components that need them; there is no package-level instance.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Warning Kind = "warning"
	Info    Kind = "info"
)

type Notifier interface {
	Notify(kind Kind, title, message string)
}

// Func adapts a plain function to Notifier.
type Func func(kind Kind, title, message string)

func (f Func) Notify(kind Kind, title, message string) { f(kind, title, message) }

// Nop drops every notification.
var Nop Notifier = Func(func(Kind, string, string) {})

// Log writes notifications to a zerolog logger at a level matching the kind.
type Log struct {
	Logger zerolog.Logger
}

func (l Log) Notify(kind Kind, title, message string) {
	var ev *zerolog.Event
	switch kind {
	case Error:
		ev = l.Logger.Error()
	case Warning:
		ev = l.Logger.Warn()
	default:
		ev = l.Logger.Info()
	}
	ev.Str("kind", string(kind)).Str("title", title).Msg(message)
}

// Writer prints one line per notification, for terminals.
type Writer struct {
	mu  sync.Mutex
	Out io.Writer
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{Out: out}
}

func (w *Writer) Notify(kind Kind, title, message string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	line := title
	if message != "" {
		line = title + ": " + message
	}
	fmt.Fprintf(w.Out, "%s %s\n", prefix(kind), line)
}

func prefix(k Kind) string {
	switch k {
	case Success:
		return "✓"
	case Error:
		return "✗"
	case Warning:
		return "!"
	default:
		return "·"
	}
}

type Note struct {
	Kind    Kind
	Title   string
	Message string
}

// Recorder keeps every notification in order.
type Recorder struct {
	mu    sync.Mutex
	notes []Note
}

func (r *Recorder) Notify(kind Kind, title, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, Note{Kind: kind, Title: title, Message: message})
}

// Notes returns a copy of what has been recorded.
func (r *Recorder) Notes() []Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Note(nil), r.notes...)
}

func (r *Recorder) Last() (Note, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notes) == 0 {
		return Note{}, false
	}
	return r.notes[len(r.notes)-1], true
}

// Multi fans out to every non-nil notifier in order.
type Multi []Notifier

func (m Multi) Notify(kind Kind, title, message string) {
	for _, n := range m {
		if n != nil {
			n.Notify(kind, title, message)
		}
	}
}
