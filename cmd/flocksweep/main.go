// Command flocksweep runs headless flocks for every seed and update order of
// a TOML plan and prints how their statistics evolve.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/sweep"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
)

var (
	logLevelFlag = flag.String("log-level", "warning", "debug, info, warning or error")
	parallelFlag = flag.Int("parallel", -1, "maximum runs stepping at once, overrides the plan when >= 0")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [plan.toml]\n", os.Args[0])
	flag.PrintDefaults()
}

func printResults(w io.Writer, results []sweep.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "order\tseed\tstep\tspeed\tspeed sd\tpolarization\tnearest\t")
	for _, r := range results {
		for _, s := range r.Samples {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%.3f\t%.3f\t%.3f\t%.2f\t\n",
				r.Run.Order, r.Run.Seed, s.Step, s.MeanSpeed, s.SpeedStdDev, s.Polarization, s.MeanNearest)
		}
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "order\truns\tpolarization\tsd\tnearest\tspeed\t")
	for _, s := range sweep.Summarize(results) {
		fmt.Fprintf(tw, "%s\t%d\t%.3f\t%.3f\t%.2f\t%.3f\t\n",
			s.Order, s.Runs, s.MeanPolarization, s.StdPolarization, s.MeanNearest, s.MeanSpeed)
	}
	return tw.Flush()
}

func run(ctx context.Context) error {
	level, err := simulation.ParseLogLevel(*logLevelFlag)
	if err != nil {
		return err
	}
	logger := golog.New(level, os.Stderr)

	plan := sweep.DefaultPlan()
	if path := flag.Arg(0); path != "" {
		if plan, err = sweep.LoadPlan(path); err != nil {
			return err
		}
	}
	if *parallelFlag >= 0 {
		plan.Parallel = *parallelFlag
	}

	logger.Infof("sweeping %d runs of %d %s boids over %d steps", len(plan.Runs()), plan.Boids, plan.Mode, plan.Steps)
	results, err := sweep.RunPlan(ctx, plan, logger)
	if err != nil {
		return err
	}
	return printResults(os.Stdout, results)
}

func main() {
	flag.Usage = usage
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx); err != nil {
		stop()
		log.Fatal(err)
	}
}
