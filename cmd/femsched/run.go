package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rwcarlsen/femloop/internal/ctxlog"
	"github.com/rwcarlsen/femloop/internal/depgraph"
	"github.com/rwcarlsen/femloop/internal/dotgraph"
	"github.com/rwcarlsen/femloop/internal/graphspec"
	"github.com/rwcarlsen/femloop/internal/partition"
)

// run parses args, loads the named graphspec document, computes its
// partitioned execution plan, and prints a Graphviz dump followed by
// the wave-by-wave execution order to outW.
func run(outW, errW io.Writer, args []string) error {
	opts, shouldExit, err := parseFlags(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger := newLogger(opts.logLevel, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	spec, err := graphspec.Load(ctx, opts.graphPath)
	if err != nil {
		return fmt.Errorf("femsched: %w", err)
	}

	g, err := graphspec.Build(spec)
	if err != nil {
		return fmt.Errorf("femsched: %w", err)
	}

	partitions, err := partition.ComputePartitions(g, opts.merge)
	if err != nil {
		return fmt.Errorf("femsched: %w", err)
	}

	loops, err := partition.ComputeLoops(partitions)
	if err != nil {
		return fmt.Errorf("femsched: %w", err)
	}

	fmt.Fprintln(outW, dotgraph.DotGraphMerged(partitions))
	printPlan(outW, loops)
	return nil
}

func printPlan(outW io.Writer, loops [][][]*depgraph.Node) {
	for i, loop := range loops {
		fmt.Fprintf(outW, "loop %d:\n", i+1)
		for g, group := range loop {
			fmt.Fprintf(outW, "    group %d: ", g+1)
			for _, n := range group {
				fmt.Fprintf(outW, "%s, ", n.Name())
			}
			fmt.Fprintln(outW)
		}
	}
}
