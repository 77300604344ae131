package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/1broseidon/winsnap/internal/config"
	"github.com/1broseidon/winsnap/internal/listing"
	"github.com/1broseidon/winsnap/internal/logging"
	"github.com/1broseidon/winsnap/internal/platform"
	"github.com/1broseidon/winsnap/internal/render"
	"github.com/1broseidon/winsnap/internal/snapshot"
)

func main() {
	if len(os.Args) < 2 {
		os.Exit(runList(nil))
	}

	switch os.Args[1] {
	case "list":
		os.Exit(runList(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		if len(os.Args[1]) > 0 && os.Args[1][0] == '-' {
			os.Exit(runList(os.Args[1:]))
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: winsnap [command] [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  list                Print every current window (default)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print effective configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'winsnap <command> --help' for command-specific options.")
}

// loadConfig reads path, or the default location when path is empty.
func loadConfig(path string) (*config.LoadResult, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func newLogger(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	return logging.New(logging.Config{
		Level:     cfg.Logging.Level,
		File:      cfg.Logging.File,
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
	})
}

func runList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file (default: ~/.config/winsnap/config.yaml)")
	format := fs.String("format", "", "Output format: text, yaml or json")
	skipInvalid := fs.Bool("skip-invalid", false, "Skip windows that fail to decode instead of aborting")
	offscreen := fs.Bool("offscreen", false, "Include windows that are not on screen")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winsnap list [--format text|yaml|json] [--skip-invalid] [--offscreen] [--config PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Print one block per window in front-to-back order.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "list takes no arguments")
		fs.Usage()
		return 2
	}

	res, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config

	outFormat := cfg.OutputFormat()
	if *format != "" {
		if outFormat, err = render.ParseFormat(*format); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
	}
	policy := cfg.Policy()
	if *skipInvalid {
		policy = snapshot.PolicySkip
	}

	logger, closer, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closer.Close()
	if res.File != "" {
		logger.Debug("config loaded", "file", res.File)
	}

	reg := platform.NewRegistry(platform.Options{
		IncludeOffscreen: cfg.IncludeOffscreen || *offscreen,
	})
	listed, err := listing.Collect(reg, listing.Options{
		Policy:        policy,
		ExcludeOwners: cfg.ExcludeOwners,
		Logger:        logger,
	})
	if err != nil {
		logger.Error("listing failed", "error", err)
		fmt.Fprintf(os.Stderr, "winsnap: %v\n", err)
		return 1
	}

	if err := render.Write(os.Stdout, outFormat, listed.Windows, render.Options{MaxWidth: stdoutWidth()}); err != nil {
		fmt.Fprintf(os.Stderr, "winsnap: %v\n", err)
		return 1
	}
	return 0
}

// stdoutWidth is the terminal width, or 0 when stdout is not a terminal.
func stdoutWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}
