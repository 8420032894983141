// ABOUTME: Host logging channel interception: calls pass through, then mirror into the scrollback
// ABOUTME: Mirroring is deferred to the loop so the console's own output cannot re-enter the hook

package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mauromedda/vrconsole/pkg/eval"
	"github.com/mauromedda/vrconsole/pkg/scrollback"
	"github.com/mauromedda/vrconsole/pkg/theme"
)

// Level classifies a mirrored call.
type Level int

const (
	LevelLog Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}
	return "log"
}

// Channel is a host logging sink.
type Channel interface {
	Log(args ...any)
	Warn(args ...any)
	Error(args ...any)
}

type mirror struct {
	c        *Console
	original Channel
}

// Mirror wraps original so every call reaches it unchanged and is then
// copied into the scrollback on the next loop drain. Each argument takes
// its own output slot. original may be nil.
func (c *Console) Mirror(original Channel) Channel {
	return &mirror{c: c, original: original}
}

func (m *mirror) Log(args ...any)   { m.emit(LevelLog, args) }
func (m *mirror) Warn(args ...any)  { m.emit(LevelWarn, args) }
func (m *mirror) Error(args ...any) { m.emit(LevelError, args) }

func (m *mirror) emit(level Level, args []any) {
	if m.original != nil {
		switch level {
		case LevelWarn:
			m.original.Warn(args...)
		case LevelError:
			m.original.Error(args...)
		default:
			m.original.Log(args...)
		}
	}
	args = append([]any(nil), args...)
	m.c.loop.Defer(func() { m.c.record(level, args) })
}

// record appends one mirrored call to the scrollback.
func (c *Console) record(level Level, args []any) {
	slot := -1
	parts := make([]string, 0, len(args))
	failed := false
	for _, a := range args {
		if self, ok := a.(*Console); ok && self == c {
			parts = append(parts, "[console]")
			continue
		}
		slot = c.output.Push(a)
		s, err := eval.Display(a)
		if err != nil {
			s, failed = err.Error(), true
		}
		parts = append(parts, s)
	}

	style := c.styleFor(level)
	if failed {
		style = c.palette.Failed()
	}
	c.buf.AppendEntry(scrollback.Entry{
		Prefix: slotPrefix(slot),
		Text:   strings.Join(parts, " "),
		Style:  style,
	})
}

func (c *Console) styleFor(level Level) theme.Style {
	switch level {
	case LevelWarn:
		return c.palette.Warning()
	case LevelError:
		return c.palette.Failed()
	}
	return c.palette.Log()
}

// HostError describes an uncaught failure reported by the host runtime.
type HostError struct {
	Message string
	Source  string
	Line    int
	Column  int
}

func (e *HostError) Error() string {
	return strings.Join([]string{
		"Message: " + e.Message,
		"URL: " + e.Source,
		fmt.Sprintf("Line: %d", e.Line),
		fmt.Sprintf("Column: %d", e.Column),
	}, " - ")
}

// ReportError logs an uncaught host error in the error style.
func (c *Console) ReportError(err error) {
	if err == nil {
		return
	}
	text := "Message: " + err.Error()
	var he *HostError
	if errors.As(err, &he) {
		text = he.Error()
	}
	c.buf.Append(text, c.palette.Failed())
}

// WriterChannel is a Channel printing one line per call to W, the way a
// host's native console would.
type WriterChannel struct {
	W io.Writer
}

func (w WriterChannel) Log(args ...any)   { w.print("", args) }
func (w WriterChannel) Warn(args ...any)  { w.print("WARN ", args) }
func (w WriterChannel) Error(args ...any) { w.print("ERROR ", args) }

func (w WriterChannel) print(tag string, args []any) {
	if w.W == nil {
		return
	}
	fmt.Fprint(w.W, tag)
	fmt.Fprintln(w.W, args...)
}
