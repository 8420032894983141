// ABOUTME: Adapters feeding structured host loggers (log/slog, logrus) into a console Channel
// ABOUTME: The message becomes the first argument; attributes or fields travel as one object

package console

import (
	"context"
	"log/slog"

	"github.com/sirupsen/logrus"
)

// SlogHandler is a slog.Handler that forwards records to a Channel. Combine
// it with the host's own handler to keep the original output.
type SlogHandler struct {
	ch    Channel
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewSlogHandler forwards records at or above level (nil means Info) to ch.
func NewSlogHandler(ch Channel, level slog.Leveler) *SlogHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &SlogHandler{ch: ch, level: level}
}

// Enabled implements slog.Handler.
func (h *SlogHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *SlogHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make(map[string]any, len(h.attrs)+r.NumAttrs())
	// Stored attrs already carry their group prefix.
	flat := *h
	flat.group = ""
	for _, a := range h.attrs {
		flat.add(fields, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.add(fields, a)
		return true
	})

	args := []any{r.Message}
	if len(fields) > 0 {
		args = append(args, fields)
	}
	switch {
	case r.Level >= slog.LevelError:
		h.ch.Error(args...)
	case r.Level >= slog.LevelWarn:
		h.ch.Warn(args...)
	default:
		h.ch.Log(args...)
	}
	return nil
}

func (h *SlogHandler) add(fields map[string]any, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if h.group != "" {
		key = h.group + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, g := range a.Value.Group() {
			sub := *h
			sub.group = key
			sub.add(fields, g)
		}
		return
	}
	fields[key] = a.Value.Any()
}

// WithAttrs implements slog.Handler.
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := *h
	out.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	out.attrs = append(out.attrs, h.attrs...)
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		out.attrs = append(out.attrs, a)
	}
	return &out
}

// WithGroup implements slog.Handler.
func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	out := *h
	if h.group != "" {
		name = h.group + "." + name
	}
	out.group = name
	return &out
}

// LogrusHook is a logrus.Hook that forwards entries to a Channel.
type LogrusHook struct {
	ch     Channel
	levels []logrus.Level
}

// NewLogrusHook forwards entries at the given levels (all when empty) to ch.
func NewLogrusHook(ch Channel, levels ...logrus.Level) *LogrusHook {
	if len(levels) == 0 {
		levels = logrus.AllLevels
	}
	return &LogrusHook{ch: ch, levels: levels}
}

// Levels implements logrus.Hook.
func (h *LogrusHook) Levels() []logrus.Level { return h.levels }

// Fire implements logrus.Hook.
func (h *LogrusHook) Fire(e *logrus.Entry) error {
	args := []any{e.Message}
	if len(e.Data) > 0 {
		fields := make(map[string]any, len(e.Data))
		for k, v := range e.Data {
			if err, ok := v.(error); ok {
				v = err.Error()
			}
			fields[k] = v
		}
		args = append(args, fields)
	}
	switch {
	case e.Level <= logrus.ErrorLevel:
		h.ch.Error(args...)
	case e.Level == logrus.WarnLevel:
		h.ch.Warn(args...)
	default:
		h.ch.Log(args...)
	}
	return nil
}
