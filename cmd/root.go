package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/tasim/sim"
	"github.com/inference-sim/tasim/sim/trace"
)

var (
	// CLI flags for the office-hours run
	students     int           // Number of students (prompted for when not set)
	capacity     int           // Hallway chairs
	maxWork      int           // Max programming/session length in time units
	timeUnit     time.Duration // Length of one time unit
	pollInterval time.Duration // Completion polling interval
	policy       string        // one-and-done or continuous
	seed         int64         // Seed for work durations
	maxThreads   int           // Goroutine start budget (0 = unlimited)
	traceLevel   string        // Event trace verbosity
	configPath   string        // Optional YAML config file
	logLevel     string        // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:           "tasim",
	Short:         "Concurrent simulator of a TA holding office hours",
	SilenceErrors: true,
}

// runCmd executes the simulation using parameters from CLI flags and the optional config file
var runCmd = &cobra.Command{
	Use:          "run",
	Short:        "Run the office-hours simulation",
	SilenceUsage: true,
	RunE:         runOffice,
}

func runOffice(cmd *cobra.Command, _ []string) error {
	// Set up logging
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("%w: invalid log level %q", sim.ErrConfiguration, logLevel)
	}
	logrus.SetLevel(level)

	opts := runOptions{
		Sim: sim.SimConfig{
			Capacity:     capacity,
			MaxWork:      maxWork,
			TimeUnit:     timeUnit,
			PollInterval: pollInterval,
			Policy:       sim.Policy(policy),
			Seed:         seed,
			MaxThreads:   maxThreads,
		},
		TraceLevel: trace.TraceLevel(traceLevel),
	}
	n := students
	haveCount := cmd.Flags().Changed("students")

	if configPath != "" {
		oc, err := LoadOfficeConfig(configPath)
		if err != nil {
			return fmt.Errorf("%w: %v", sim.ErrConfiguration, err)
		}
		if err := oc.ApplyTo(&opts, &n, cmd.Flags()); err != nil {
			return err
		}
		haveCount = haveCount || oc.Students != nil
	}
	if !trace.IsValidTraceLevel(string(opts.TraceLevel)) {
		return fmt.Errorf("%w: unknown trace level %q; valid: none, events", sim.ErrConfiguration, opts.TraceLevel)
	}

	if !haveCount {
		if n, err = readStudentCount(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return simulate(ctx, opts, n, cmd.OutOrStdout())
}

// simulate runs one office-hours session and prints its summaries to out.
func simulate(ctx context.Context, opts runOptions, n int, out io.Writer) error {
	var simOpts []sim.Option
	var st *trace.SimulationTrace
	if tc := (trace.TraceConfig{Level: opts.TraceLevel}); tc.Enabled() {
		st = trace.NewSimulationTrace(tc)
		simOpts = append(simOpts, sim.WithTrace(st))
	}

	s, err := sim.NewSimulator(opts.Sim, n, simOpts...)
	if err != nil {
		return err
	}
	logrus.Infof("Starting office hours: %d students, %d chairs, policy=%s, seed=%d",
		n, opts.Sim.Capacity, opts.Sim.Policy, opts.Sim.Seed)

	summary, err := s.Run(ctx)
	if summary != nil && len(summary.Outcomes) > 0 {
		summary.Print(out)
		if st != nil {
			trace.Summarize(st).Print(out)
		}
		fmt.Fprintln(out, "Simulation ended.")
	}
	return err
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	def := sim.DefaultSimConfig()

	runCmd.Flags().IntVar(&students, "students", 0, "Number of students (prompted for when omitted)")
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML office-hours config; explicit flags take precedence")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Office setup
	runCmd.Flags().IntVar(&capacity, "capacity", def.Capacity, "Number of hallway chairs")
	runCmd.Flags().StringVar(&policy, "policy", string(def.Policy), "What a student does after help: one-and-done or continuous")
	runCmd.Flags().IntVar(&maxWork, "max-work", def.MaxWork, "Max programming and session length, in time units")
	runCmd.Flags().DurationVar(&timeUnit, "time-unit", def.TimeUnit, "Length of one time unit")
	runCmd.Flags().DurationVar(&pollInterval, "poll-interval", def.PollInterval, "How often the coordinator checks whether everyone was helped")
	runCmd.Flags().Int64Var(&seed, "seed", def.Seed, "Seed for work and session durations")
	runCmd.Flags().IntVar(&maxThreads, "max-threads", 0, "Max goroutines for the TA and students (0 = unlimited)")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", string(trace.TraceLevelNone), "Event trace: none or events")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
