// Package main is the entry point for the linemine notebook.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	"github.com/dshills/linemine/internal/app"
	"github.com/dshills/linemine/internal/ingest"
	"github.com/dshills/linemine/internal/storage"
	"github.com/dshills/linemine/internal/tui"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

// CLI is the command line surface.
var CLI struct {
	State    string `help:"Path of the state file." default:"linemine.json" type:"path"`
	Listen   string `help:"WebSocket feed address, e.g. 127.0.0.1:9001. Empty disables the feed."`
	Filter   string `help:"Lua filter script applied to every incoming block." type:"existingfile" optional:""`
	Export   string `help:"Path written by the export key." default:"in.json" type:"path"`
	LogLevel string `help:"Log verbosity." enum:"debug,info,warn,error" default:"info"`
	LogFile  string `help:"Write logs here; the terminal belongs to the screen." type:"path" optional:""`
	Version  bool   `help:"Print version and exit."`
}

func main() {
	os.Exit(run())
}

func run() int {
	kong.Parse(&CLI,
		kong.Name("linemine"),
		kong.Description("Terminal notebook for mined text lines: collect, edit, distribute, export."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	if CLI.Version {
		fmt.Printf("linemine %s (%s)\n", version, commit)
		return 0
	}

	var logOut io.Writer
	if CLI.LogFile != "" {
		f, err := os.OpenFile(CLI.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logOut = f
	}

	application, err := app.New(app.Options{
		StatePath:  CLI.State,
		ListenAddr: CLI.Listen,
		FilterPath: CLI.Filter,
		LogLevel:   CLI.LogLevel,
		LogOutput:  logOut,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	if err := application.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = application.Shutdown(shutdownCtx)
	}()

	// Piped stdin is a feed too: each line becomes an entry.
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		go func() {
			if err := ingest.ReadLines(os.Stdin, application.Ingestor()); err != nil {
				application.Logger().Warn("stdin feed: %v", err)
			}
		}()
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	ui := tui.New(application, tui.Options{ExportPath: exportPath()})
	errCh := make(chan error, 1)
	go func() {
		errCh <- ui.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	case <-signals:
	}
	return 0
}

// exportPath falls back to the conventional name when the flag is empty.
func exportPath() string {
	if CLI.Export == "" {
		return storage.ExportFileName
	}
	return CLI.Export
}
