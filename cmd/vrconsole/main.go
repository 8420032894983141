// ABOUTME: CLI entry point for the desktop console harness
// ABOUTME: Loads settings, builds the host, then runs the terminal UI or batch mode

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	// termfix must be imported before any package that imports bubbletea.
	_ "github.com/mauromedda/vrconsole/internal/termfix"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/mauromedda/vrconsole/internal/config"
	"github.com/mauromedda/vrconsole/internal/log"
	"github.com/mauromedda/vrconsole/internal/store"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run performs the initialization sequence and dispatches to the selected mode.
func run(argv []string, stdin *os.File, stdout, stderr io.Writer) error {
	args, err := parseFlags(argv, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	if args.version {
		fmt.Fprintf(stdout, "vrconsole %s (%s) built %s\n", version, commit, date)
		return nil
	}

	settings, watch, err := loadSettings(args.config)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	applyOverrides(settings, args)

	if args.explain {
		fmt.Fprint(stdout, config.Explain(settings))
		return nil
	}

	level, err := config.ParseLevel(settings.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	interactive := !args.batch && term.IsTerminal(int(stdin.Fd()))
	native := stderr
	if interactive {
		f, err := openLogFile(args.logFile)
		if err != nil {
			return err
		}
		defer f.Close()
		log.SetOutput(f)
		defer log.SetOutput(nil)
		native = f
	}

	h, err := newHost(hostOptions{
		settings: settings,
		watch:    watch,
		slots:    openSlots(),
		native:   native,
		copy:     clipboard.WriteAll,
	})
	if err != nil {
		return err
	}
	defer h.close()

	if !interactive {
		return runBatch(h, stdin, stdout)
	}
	return runTUI(h, stdin, stdout)
}

// loadSettings reads path, or the first existing default settings file.
// It returns the files to watch for reloads.
func loadSettings(path string) (*config.Settings, []string, error) {
	if path != "" {
		s, err := config.LoadFile(path)
		return s, []string{path}, err
	}
	watch := config.SettingsFiles()
	s, err := config.Load()
	return s, watch, err
}

// applyOverrides layers command-line flags over loaded settings.
func applyOverrides(s *config.Settings, args cliArgs) {
	if args.theme != "" {
		ext := strings.ToLower(filepath.Ext(args.theme))
		if ext == ".yaml" || ext == ".yml" {
			s.ThemeFile = args.theme
		} else {
			s.Theme, s.ThemeFile = args.theme, ""
		}
	}
	if args.layout != "" {
		s.KeyboardLayout = args.layout
	}
	if args.logLevel != "" {
		s.LogLevel = args.logLevel
	}
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		dir := config.GlobalDir()
		if err := config.EnsureDir(dir); err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "vrconsole.log")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// openSlots returns the on-disk slot store, or an in-memory one when the
// directory cannot be created.
func openSlots() store.Slots {
	dir := config.SlotsDir()
	if err := config.EnsureDir(dir); err != nil {
		log.Warn("slots: %v; history will not persist", err)
		return store.NewMemory()
	}
	return store.NewDir(dir)
}

// runTUI runs the BubbleTea program alongside a signal watcher.
func runTUI(h *host, in *os.File, out io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	width, height, err := term.GetSize(int(in.Fd()))
	if err != nil {
		width, height = 80, 24
	}

	p := tea.NewProgram(newModel(h, width, height),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithInput(in),
		tea.WithOutput(out),
	)

	g, ctx := errgroup.WithContext(ctx)
	done := make(chan struct{})
	g.Go(func() error {
		defer close(done)
		_, err := p.Run()
		return err
	})
	g.Go(func() error {
		select {
		case <-ctx.Done():
			p.Quit()
		case <-done:
		}
		return nil
	})
	return g.Wait()
}
