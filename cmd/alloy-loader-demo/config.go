package main

import "flag"

// CLIArgs holds all command-line arguments passed to the demo binary.
type CLIArgs struct {
	ModsDir       string
	OverridesPath string
	LogDir        string
	Verbose       bool
}

// ParseCLIArgs parses the command-line flags and returns a populated CLIArgs struct.
func ParseCLIArgs() *CLIArgs {
	args := &CLIArgs{}

	flag.StringVar(&args.ModsDir, "mods-dir", "mods", "Directory to scan for mod archives.")
	flag.StringVar(&args.OverridesPath, "overrides", "", "Path to an operator-supplied dependency override file.")
	flag.StringVar(&args.LogDir, "log-dir", "logs", "Directory to write the loader's log file into.")
	flag.BoolVar(&args.Verbose, "verbose", false, "Enable verbose (debug) logging.")
	flag.Parse()

	return args
}
