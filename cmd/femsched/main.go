// Command femsched is a demo driver: it loads a graphspec document,
// computes its partitioned execution plan, and prints the plan and a
// Graphviz dump of it. It exists to exercise the library packages
// end-to-end, not as a first-class deliverable of its own.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
