// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package cli

import (
	"context"
	"fmt"
	"io"

	strf "github.com/petenewcomb/strf-go"
	"github.com/petenewcomb/strf-go/internal/cerr"
	"github.com/petenewcomb/strf-go/internal/config"
	"github.com/petenewcomb/strf-go/internal/render"
	"github.com/petenewcomb/strf-go/internal/workload"
	"github.com/petenewcomb/strf-go/otstrf"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

const (
	errNoWorkload       = cerr.Error("a workload file or --random is required")
	errWorkloadConflict = cerr.Error("a workload file and --random are mutually exclusive")
)

// workloadFlags select a workload and override its parameters.
type workloadFlags struct {
	cpus    int
	chunk   float64
	quantum float64
	random  int
	seed    uint64
}

func (f *workloadFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.cpus, "cpus", strf.DefaultParams.NumCPUs, "Number of processors")
	cmd.Flags().Float64Var(&f.chunk, "chunk", strf.DefaultParams.ChunkUnit, "Chunk unit")
	cmd.Flags().Float64Var(&f.quantum, "quantum", strf.DefaultParams.QuantumTime, "Quantum time")
	cmd.Flags().IntVar(&f.random, "random", 0, "Generate this many random jobs instead of reading a file")
	cmd.Flags().Uint64Var(&f.seed, "seed", 1, "Seed for --random")
}

// load resolves the workload from an optional file and the flags. Flags
// given explicitly override file values.
func (f *workloadFlags) load(cmd *cobra.Command, args []string) (*config.Workload, error) {
	var w *config.Workload
	switch {
	case len(args) > 0 && f.random > 0:
		return nil, errWorkloadConflict
	case len(args) > 0:
		var err error
		if w, err = config.Load(args[0]); err != nil {
			return nil, err
		}
	case f.random > 0:
		jobs := workload.Random(workload.NewRand(f.seed), f.random)
		w = config.FromJobs(strf.DefaultParams, jobs)
	default:
		return nil, errNoWorkload
	}

	if cmd.Flags().Changed("cpus") {
		w.CPUs = f.cpus
	}
	if cmd.Flags().Changed("chunk") {
		w.ChunkUnit = f.chunk
	}
	if cmd.Flags().Changed("quantum") {
		w.Quantum = f.quantum
	}
	return w, nil
}

func newRunCmd() *cobra.Command {
	var wf workloadFlags
	var format string
	var svgPath string
	var turnaroundPath string
	var trace bool

	cmd := &cobra.Command{
		Use:   "run [workload-file]",
		Short: "Simulate a workload and print the schedule",
		Long: `Simulate the jobs in a YAML or JSON workload file, or a randomly generated
set, and print the per-job results, the Gantt listing, and the ready queue at
each scheduling round.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var write func(io.Writer, *strf.Result) error
			switch format {
			case "text":
				write = render.WriteText
			case "json":
				write = render.WriteJSON
			default:
				return fmt.Errorf("invalid --format %q: must be text or json", format)
			}

			w, err := wf.load(cmd, args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if trace {
				shutdown, err := installTracing(cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				defer func() {
					if err := shutdown(context.Background()); err != nil {
						zap.L().Warn("Trace exporter shutdown failed", zap.Error(err))
					}
				}()
			}

			res, err := otstrf.InstrumentedSimulate(ctx, "strfsim.run", w.StrfJobs(), w.Params())
			if err != nil {
				return err
			}

			if svgPath != "" {
				if err := render.SaveSVG(svgPath, res); err != nil {
					return fmt.Errorf("writing chart: %w", err)
				}
				zap.L().Info("Wrote chart", zap.String("path", svgPath))
			}
			if turnaroundPath != "" {
				if err := render.SaveTurnaroundSVG(turnaroundPath, res); err != nil {
					return fmt.Errorf("writing turnaround chart: %w", err)
				}
				zap.L().Info("Wrote turnaround chart", zap.String("path", turnaroundPath))
			}
			return write(cmd.OutOrStdout(), res)
		},
	}

	wf.register(cmd)
	cmd.Flags().StringVar(&format, "format", "text", "Output format (text, json)")
	cmd.Flags().StringVar(&svgPath, "svg", "", "Also write a Gantt chart to this SVG file")
	cmd.Flags().StringVar(&turnaroundPath, "turnaround-svg", "", "Also write a per-job turnaround chart to this SVG file")
	cmd.Flags().BoolVar(&trace, "trace", false, "Export an OpenTelemetry trace of the run to stderr")

	return cmd
}

// installTracing sets a global tracer provider that exports spans to w and
// returns its shutdown function.
func installTracing(w io.Writer) (func(context.Context) error, error) {
	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithSyncer(exporter),
	)
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	return func(ctx context.Context) error {
		otel.SetTracerProvider(prev)
		return tp.Shutdown(ctx)
	}, nil
}
