// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package cli implements the strfsim command line.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type rootFlags struct {
	logLevel  string
	logFormat string
}

// NewRootCmd creates the root cobra command for strfsim. The zap logger built
// from the logging flags is installed with zap.ReplaceGlobals before any
// subcommand runs.
func NewRootCmd() *cobra.Command {
	var flags rootFlags
	var restore func()

	root := &cobra.Command{
		Use:   "strfsim",
		Short: "Shortest-remaining-time-first scheduling simulator",
		Long: `strfsim simulates shortest-remaining-time-first scheduling of a job set on
a pool of identical processors. Jobs run in fixed-size chunks and scheduling
decisions are made at most once per quantum.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), flags.logLevel, flags.logFormat)
			if err != nil {
				return err
			}
			restore = zap.ReplaceGlobals(logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = zap.L().Sync()
			if restore != nil {
				restore()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", "console", "Log format (console, json)")

	root.AddCommand(
		newRunCmd(),
		newGenerateCmd(),
		newServeCmd(),
	)

	return root
}

// newLogger builds a logger writing to w.
func newLogger(w io.Writer, level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var enc zapcore.Encoder
	switch format {
	case "console":
		cfg := zap.NewDevelopmentEncoderConfig()
		enc = zapcore.NewConsoleEncoder(cfg)
	case "json":
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	default:
		return nil, fmt.Errorf("invalid --log-format %q: must be console or json", format)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}
