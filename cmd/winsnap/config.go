package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/winsnap/internal/config"
)

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  winsnap config validate [--config PATH]")
	fmt.Fprintln(w, "  winsnap config print [--config PATH]")
}

func runConfig(args []string) int {
	if len(args) == 0 {
		printConfigUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "validate":
		return runConfigValidate(args[1:])
	case "print":
		return runConfigPrint(args[1:])
	case "help", "-h", "--help":
		printConfigUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n\n", args[0])
		printConfigUsage(os.Stderr)
		return 2
	}
}

func parseConfigFlags(name string, args []string) (string, int, bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file (default: ~/.config/winsnap/config.yaml)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return "", 0, false
		}
		return "", 2, false
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "config %s takes no arguments\n", name)
		return "", 2, false
	}
	return *path, 0, true
}

func runConfigValidate(args []string) int {
	path, code, ok := parseConfigFlags("validate", args)
	if !ok {
		return code
	}
	res, err := loadConfig(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if res.File == "" {
		fmt.Println("OK (no config file, using defaults)")
	} else {
		fmt.Printf("OK (%s)\n", res.File)
	}
	return 0
}

func runConfigPrint(args []string) int {
	path, code, ok := parseConfigFlags("print", args)
	if !ok {
		return code
	}
	res, err := loadConfig(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	data, err := config.Marshal(res.Config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	os.Stdout.Write(data)
	return 0
}
