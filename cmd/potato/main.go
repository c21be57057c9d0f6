// Package main is the entry point for the potato inline document demo.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dshills/potato/internal/app"
	"github.com/dshills/potato/internal/config"
	"github.com/dshills/potato/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type flags struct {
	configPath string
	logLevel   string
	logFile    string
	watchFile  string
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	cfg, err := config.Load(f.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := applyFlags(cfg, f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := configureLogging(cfg.Log()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	for path, err := range cfg.ConfigErrors() {
		fmt.Fprintf(os.Stderr, "Warning: config %s: %v\n", path, err)
	}

	application := app.New(app.Options{Config: cfg, WatchFile: f.watchFile})

	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// applyFlags overrides configuration with the flags that were given.
func applyFlags(cfg *config.Config, f flags) error {
	if f.logLevel != "" {
		if err := cfg.Set("log.level", f.logLevel); err != nil {
			return err
		}
	}
	if f.logFile != "" {
		if err := cfg.Set("log.file", f.logFile); err != nil {
			return err
		}
	}
	return nil
}

// configureLogging routes logs to the configured destination.
func configureLogging(lc config.LogConfig) error {
	verbosity, err := lc.Verbosity()
	if err != nil {
		return err
	}
	path := lc.Destination()
	commonlog.Configure(verbosity, &path)
	return nil
}

func parseFlags() flags {
	var f flags
	var showVersion bool
	var showHelp bool

	flag.StringVar(&f.configPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&f.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&f.logLevel, "log-level", "", "Log level (none, critical, error, warn, notice, info, debug)")
	flag.StringVar(&f.logFile, "log-file", "", "Write logs to this file")
	flag.StringVar(&f.watchFile, "watch", "", "Show a text file and reload it on change")
	flag.StringVar(&f.watchFile, "w", "", "Show a text file and reload it on change (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "potato - inline rich text demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: potato [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  potato                         Show the sample document\n")
		fmt.Fprintf(os.Stderr, "  potato -w notes.txt            Also show notes.txt, live\n")
		fmt.Fprintf(os.Stderr, "  potato -log-file potato.log -log-level debug\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("potato %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if f.logLevel != "" {
		if _, err := config.ParseVerbosity(f.logLevel); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	return f
}
