// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package cli

import (
	"fmt"
	"os"

	strf "github.com/petenewcomb/strf-go"
	"github.com/petenewcomb/strf-go/internal/config"
	"github.com/petenewcomb/strf-go/internal/workload"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var jobs int
	var seed uint64
	var params strf.Params
	var output string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a random workload file",
		Long: `Generate a workload with arrival times in {0, 0.5, ..., 10} and burst times
in {1, 1.5, ..., 10}, written as YAML suitable for "strfsim run".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jobs <= 0 {
				return fmt.Errorf("--jobs must be positive, got %d", jobs)
			}
			if err := params.Validate(); err != nil {
				return err
			}
			w := config.FromJobs(params, workload.Random(workload.NewRand(seed), jobs))
			data, err := w.Marshal()
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("writing workload file: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&jobs, "jobs", 5, "Number of jobs")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "Random seed")
	cmd.Flags().IntVar(&params.NumCPUs, "cpus", strf.DefaultParams.NumCPUs, "Number of processors")
	cmd.Flags().Float64Var(&params.ChunkUnit, "chunk", strf.DefaultParams.ChunkUnit, "Chunk unit")
	cmd.Flags().Float64Var(&params.QuantumTime, "quantum", strf.DefaultParams.QuantumTime, "Quantum time")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")

	return cmd
}
