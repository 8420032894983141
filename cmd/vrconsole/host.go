// ABOUTME: Wires settings, theme, keyboard layout, persistence and host logging into one console
// ABOUTME: The host owns the simulated scene and shake detector; every method runs on the UI goroutine

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mauromedda/vrconsole/internal/config"
	"github.com/mauromedda/vrconsole/internal/gesture"
	"github.com/mauromedda/vrconsole/internal/log"
	"github.com/mauromedda/vrconsole/internal/store"
	"github.com/mauromedda/vrconsole/pkg/cmdline"
	"github.com/mauromedda/vrconsole/pkg/console"
	"github.com/mauromedda/vrconsole/pkg/eval"
	"github.com/mauromedda/vrconsole/pkg/geom"
	"github.com/mauromedda/vrconsole/pkg/keyboard"
	"github.com/mauromedda/vrconsole/pkg/scrollback"
	"github.com/mauromedda/vrconsole/pkg/theme"
)

// mouseScale converts one terminal cell of pointer travel to metres.
const mouseScale = 0.01

// reloadInterval is how often the settings files are polled.
const reloadInterval = time.Second

type hostOptions struct {
	settings *config.Settings
	// watch lists settings files polled for hot reload; empty disables it.
	watch []string
	slots store.Slots
	// native receives host log calls before they are mirrored.
	native io.Writer
	copy   func(string) error
}

type host struct {
	settings   *config.Settings
	console    *console.Console
	channel    console.Channel
	logger     *slog.Logger
	logrus     *logrus.Logger
	scene      *Scene
	controller *Controller
	gesture    *gesture.Detector
	watch      []string
	lastMove   time.Duration
	copy       func(string) error
	status     string
}

// resolveTheme picks the theme file, a built-in, or <themes>/<name>.yaml.
func resolveTheme(s *config.Settings) (*theme.Theme, error) {
	if s.ThemeFile != "" {
		return theme.LoadFile(s.ThemeFile)
	}
	if t := theme.Builtin(s.Theme); t != nil {
		return t, nil
	}
	t, err := theme.LoadFile(filepath.Join(config.ThemesDir(), s.Theme+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("theme %q: %w", s.Theme, err)
	}
	return t, nil
}

func newHost(opts hostOptions) (*host, error) {
	s := opts.settings
	if s == nil {
		s = config.Defaults()
	}

	th, err := resolveTheme(s)
	if err != nil {
		log.Warn("%v; using the default theme", err)
		th = theme.Builtin("default")
	}
	theme.Set(th)

	var layout [][]keyboard.KeyDef
	if s.KeyboardLayout != "" {
		if layout, err = keyboard.LoadLayout(s.KeyboardLayout); err != nil {
			return nil, err
		}
	}

	h := &host{
		settings:   s,
		scene:      newScene(),
		controller: &Controller{},
		watch:      opts.watch,
		copy:       opts.copy,
	}
	scope := eval.NewScope()
	scope.Define("scene", h.scene)
	scope.Define("controller", h.controller)
	scope.Define("settings", s)
	scope.Define("themes", theme.BuiltinNames())

	sb := s.Scrollback
	h.console = console.New(console.Options{
		OutputCapacity:  s.OutputSlots,
		HistoryCapacity: s.HistorySize,
		Scope:           scope,
		Store:           opts.slots,
		Scrollback: scrollback.Options{
			Width:          sb.Width,
			ViewportHeight: sb.ViewportHeight,
			MaxHeight:      sb.MaxHeight,
			FontSize:       sb.FontSize,
			ScrollGain:     sb.ScrollGain,
			Drag:           sb.Drag,
			Bounce:         sb.Bounce,
		},
		Line:     cmdline.Options{Placeholder: s.Placeholder},
		Keyboard: keyboard.Options{Layout: layout},
		Palette:  th.Palette,
	})

	native := opts.native
	if native == nil {
		native = io.Discard
	}
	h.channel = h.console.Mirror(console.WriterChannel{W: native})
	level, _ := config.ParseLevel(s.LogLevel)
	h.logger = slog.New(console.NewSlogHandler(h.channel, level))
	h.logrus = logrus.New()
	h.logrus.SetOutput(io.Discard)
	h.logrus.SetLevel(logrus.DebugLevel)
	h.logrus.AddHook(console.NewLogrusHook(h.channel))

	h.configureGesture()

	for n, fn := range map[int]func(){1: h.demo, 2: h.copyLast, 3: h.console.Clear} {
		if err := h.console.AssignFunctionKey(n, fn); err != nil {
			return nil, err
		}
	}

	loop := h.console.Loop()
	loop.Every(0, func(time.Duration) { h.scene.Frames++ })
	if len(opts.watch) > 0 {
		w := config.NewWatcher(opts.watch, h.reload)
		loop.Every(reloadInterval, func(time.Duration) { w.Check() })
	}

	h.console.Attach(h.controller)
	return h, nil
}

func (h *host) configureGesture() {
	g := h.settings.Gesture
	if !g.Enabled {
		h.gesture = nil
		return
	}
	h.gesture = gesture.New(gesture.Options{
		Threshold: g.Threshold,
		Tolerance: g.Tolerance,
		Shakes:    g.Shakes,
		Reset:     time.Duration(g.ResetMillis) * time.Millisecond,
		OnShake:   func(int) { h.toggle() },
	})
}

func (h *host) close() { h.console.Close() }

// toggle shows or hides the console on the controller.
func (h *host) toggle() { h.console.Attach(h.controller) }

// moveController tracks the pointer as the controller and feeds the shake detector.
func (h *host) moveController(x, y int) {
	pos := geom.V(float64(x)*mouseScale, -float64(y)*mouseScale*2, 0)
	h.controller.Position = pos

	now := h.console.Loop().Now()
	delta := now - h.lastMove
	h.lastMove = now
	if h.gesture != nil {
		h.gesture.Update(h.controller.ID, pos, delta)
	}
}

// pressFunction presses F<n> on the virtual keyboard.
func (h *host) pressFunction(n int) {
	kb := h.console.Keyboard()
	if k, ok := kb.Find(fmt.Sprintf("F%d", n)); ok {
		kb.Press(k)
	}
}

// demo logs through every host channel the console mirrors.
func (h *host) demo() {
	h.channel.Log("scene has", len(h.scene.Objects), "objects")
	h.channel.Warn("lamp", h.scene.Find("lamp"))
	h.logger.Info("frame stats", "frames", h.scene.Frames)
	h.logrus.WithField("controller", h.controller.ID).Warn("battery low")
	h.console.ReportError(&console.HostError{
		Message: "Uncaught TypeError: cannot read 'mesh' of undefined",
		Source:  "scene.go",
		Line:    42,
		Column:  7,
	})
	h.status = "demo output logged"
}

// copyLast puts the newest output value on the clipboard.
func (h *host) copyLast() {
	v, slot, ok := h.console.Output().Last()
	if !ok {
		h.status = "nothing to copy"
		return
	}
	text, err := eval.Display(v)
	if err == nil {
		err = h.copy(text)
	}
	if err != nil {
		h.console.ReportError(fmt.Errorf("copy %c%d: %w", eval.MarkerRune, slot, err))
		return
	}
	h.status = fmt.Sprintf("copied %c%d", eval.MarkerRune, slot)
}

// reload re-reads settings after a file change. Level and gesture tuning
// apply immediately; panel sizes and the theme apply on restart.
func (h *host) reload() {
	s, err := loadWatched(h.watch)
	if err != nil {
		h.console.ReportError(fmt.Errorf("reloading settings: %w", err))
		return
	}
	h.settings.LogLevel = s.LogLevel
	h.settings.Gesture = s.Gesture
	if level, err := config.ParseLevel(s.LogLevel); err == nil {
		log.SetLevel(level)
	}
	h.configureGesture()
	h.logger.Info("settings reloaded", "log_level", s.LogLevel, "gesture", s.Gesture.Enabled)
}

// loadWatched loads the first existing file of paths, or defaults.
func loadWatched(paths []string) (*config.Settings, error) {
	for _, p := range paths {
		s, err := config.LoadFile(p)
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	return config.Defaults(), nil
}
