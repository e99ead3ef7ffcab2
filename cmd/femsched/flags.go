package main

import (
	"flag"
	"fmt"
	"io"
)

// ExitError carries the process exit code a command-line usage mistake
// should produce. An explicit help request is not an ExitError; it exits
// cleanly.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

// options holds the parsed command-line configuration.
type options struct {
	graphPath string
	merge     bool
	logLevel  string
}

// parseFlags processes args, returning the resulting options, whether
// the program should exit cleanly (e.g. -h was given), or an ExitError
// for a genuine usage mistake.
func parseFlags(args []string, output io.Writer) (*options, bool, error) {
	flagSet := flag.NewFlagSet("femsched", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
femsched - dumps a partitioned execution plan for a graphspec document.

Usage:
  femsched [options] GRAPH_PATH

Arguments:
  GRAPH_PATH
    Path to a single .hcl file or a directory of .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	mergeFlag := flagSet.Bool("merge", true, "merge compatible sibling sweeps into fewer partitions")
	logLevelFlag := flagSet.String("log-level", "info", "logging level: debug, info, warn, or error")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}

	switch *logLevelFlag {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid -log-level: must be debug, info, warn, or error"}
	}

	return &options{
		graphPath: flagSet.Arg(0),
		merge:     *mergeFlag,
		logLevel:  *logLevelFlag,
	}, false, nil
}
