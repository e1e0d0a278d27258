// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/petenewcomb/strf-go/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	var addr string
	var shutdownTimeout time.Duration
	var maxJobs int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulator over HTTP",
		Long: `Serve POST /simulate, GET /workloads/random, and GET /healthz until
interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxJobs <= 0 {
				return fmt.Errorf("--max-jobs must be positive, got %d", maxJobs)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(zap.L(), server.WithMaxJobs(maxJobs))
			return srv.ListenAndServe(ctx, addr, shutdownTimeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 5*time.Second, "Graceful shutdown timeout")
	cmd.Flags().IntVar(&maxJobs, "max-jobs", server.DefaultMaxJobs, "Maximum jobs per request")

	return cmd
}
