// ABOUTME: Tests for batch mode and flag handling
// ABOUTME: Batch output is compared line by line; flags are parsed from explicit argv

package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/mauromedda/vrconsole/internal/config"
)

func TestRunBatch(t *testing.T) {
	t.Parallel()
	h := newTestHost(t, nil)

	in := strings.NewReader("1+1\n\n  scene.Names()\nnope\nconsole.log('hi', §0)\n§\n")
	var out bytes.Buffer
	if err := runBatch(h.host, in, &out); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"§0: 2",
		`§1: ["cube","floor","lamp"]`,
		"nope is not defined",
		"undefined",
		"§3: hi 2",
		"§4: 2",
	}
	got := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("output:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
	if h.console.History().Len() != 5 {
		t.Errorf("history = %v", h.console.History().Entries())
	}
}

func TestRunBatchLongLine(t *testing.T) {
	t.Parallel()
	h := newTestHost(t, nil)

	long := "'" + strings.Repeat("a", 200_000) + "'"
	in := strings.NewReader(long + "\n1+1")
	var out bytes.Buffer
	if err := runBatch(h.host, in, &out); err != nil {
		t.Fatalf("runBatch: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if !strings.HasPrefix(lines[0], "§0:") || !strings.Contains(out.String(), `"aaaa`) {
		t.Errorf("long result not printed: %.60q", out.String())
	}
	if last := lines[len(lines)-1]; last != "§1: 2" {
		t.Errorf("last line = %q; want §1: 2", last)
	}
}

func TestParseFlags(t *testing.T) {
	t.Parallel()
	args, err := parseFlags([]string{"--theme", "dark", "--batch", "--log-level", "debug"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if args.theme != "dark" || !args.batch || args.logLevel != "debug" {
		t.Errorf("args = %+v", args)
	}
	if _, err := parseFlags([]string{"--nope"}, io.Discard); err == nil {
		t.Error("expected error for unknown flag")
	}
}

func TestApplyOverrides(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		args      cliArgs
		theme     string
		themeFile string
	}{
		{"none", cliArgs{}, "default", ""},
		{"name", cliArgs{theme: "dark"}, "dark", ""},
		{"file", cliArgs{theme: "/tmp/neon.YAML"}, "default", "/tmp/neon.YAML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := config.Defaults()
			applyOverrides(s, tt.args)
			if s.Theme != tt.theme || s.ThemeFile != tt.themeFile {
				t.Errorf("Theme=%q ThemeFile=%q", s.Theme, s.ThemeFile)
			}
		})
	}

	s := config.Defaults()
	applyOverrides(s, cliArgs{layout: "dvorak.yaml", logLevel: "warn"})
	if s.KeyboardLayout != "dvorak.yaml" || s.LogLevel != "warn" {
		t.Errorf("overrides = %+v", s)
	}
}

func TestRunVersionAndExplain(t *testing.T) {
	t.Setenv(config.HomeEnv, t.TempDir())

	var out bytes.Buffer
	if err := run([]string{"--version"}, nil, &out, io.Discard); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "vrconsole dev") {
		t.Errorf("version = %q", out.String())
	}

	out.Reset()
	if err := run([]string{"--explain", "--theme", "dark"}, nil, &out, io.Discard); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Theme:          dark") {
		t.Errorf("explain = %q", out.String())
	}
}
