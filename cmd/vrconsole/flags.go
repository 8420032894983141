// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --config, --theme, --layout, --log-level, --log-file, --batch, --explain, --version

package main

import (
	"flag"
	"io"
)

type cliArgs struct {
	config   string
	theme    string
	layout   string
	logLevel string
	logFile  string
	batch    bool
	explain  bool
	version  bool
}

func parseFlags(argv []string, stderr io.Writer) (cliArgs, error) {
	var args cliArgs

	fs := flag.NewFlagSet("vrconsole", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&args.config, "config", "", "Settings file (default: first of ~/.vrconsole/config.{yaml,yml,toml})")
	fs.StringVar(&args.theme, "theme", "", "Theme name or YAML theme file")
	fs.StringVar(&args.layout, "layout", "", "Keyboard layout YAML file")
	fs.StringVar(&args.logLevel, "log-level", "", "Diagnostic level: debug, info, warn, error")
	fs.StringVar(&args.logFile, "log-file", "", "Diagnostics file (default: <home>/vrconsole.log in the terminal UI)")
	fs.BoolVar(&args.batch, "batch", false, "Evaluate stdin line by line and print results")
	fs.BoolVar(&args.explain, "explain", false, "Print the effective settings and exit")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")

	if err := fs.Parse(argv); err != nil {
		return cliArgs{}, err
	}
	return args, nil
}
