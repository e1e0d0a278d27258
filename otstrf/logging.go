// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otstrf

import (
	"context"
	"time"

	strf "github.com/petenewcomb/strf-go"
	"go.uber.org/zap"
)

const component = "otstrf"

// LoggingObserver returns an observer that logs each scheduling round,
// dispatch, and completion at Debug level and each stall at Warn level. A nil
// logger selects zap.L().
func LoggingObserver(logger *zap.Logger) strf.Observer {
	if logger == nil {
		logger = zap.L()
	}
	logger = logger.With(zap.String("component", component))
	return strf.ObserverFuncs{
		Round: func(snapshot strf.QueueSnapshot) {
			logger.Debug("Scheduling round",
				zap.Float64("time", snapshot.Time),
				zap.Int("waiting", len(snapshot.Entries)))
		},
		Dispatch: func(event strf.GanttEvent) {
			logger.Debug("Dispatched chunk",
				zap.Float64("time", event.StartTime),
				zap.Stringer("cpu", event.Processor),
				zap.String("job", event.JobID),
				zap.Float64("duration", event.Duration))
		},
		Complete: func(job strf.JobResult) {
			logger.Debug("Job completed",
				zap.String("job", job.ID),
				zap.Float64("end", job.EndTime),
				zap.Float64("turnaround", job.TurnaroundTime))
		},
		Stall: func(at float64) {
			// Unreachable for valid input; reaching it means the eligibility
			// or advance computation is broken.
			logger.Warn("No future event, advancing by stall increment",
				zap.Float64("time", at))
		},
	}
}

// LoggedSimulate runs strf.Simulate with a LoggingObserver attached and logs
// the start and outcome of the run. A nil logger selects zap.L().
func LoggedSimulate(
	logger *zap.Logger,
	operationName string,
	jobs []strf.Job,
	params strf.Params,
	opts ...strf.Option,
) (*strf.Result, error) {
	return loggedSimulate(logger, operationName, simulate)(context.Background(), jobs, params, opts...)
}

func loggedSimulate(logger *zap.Logger, operationName string, next simulateFunc) simulateFunc {
	if logger == nil {
		logger = zap.L()
	}
	return func(ctx context.Context, jobs []strf.Job, params strf.Params, opts ...strf.Option) (*strf.Result, error) {
		logStart(logger, operationName, jobs, params)
		startTime := time.Now()
		res, err := next(ctx, jobs, params, withOption(opts, strf.WithObserver(LoggingObserver(logger)))...)
		logOutcome(logger, operationName, time.Since(startTime), res, err)
		return res, err
	}
}

func logStart(logger *zap.Logger, operationName string, jobs []strf.Job, params strf.Params) {
	logger.Debug("Starting simulation",
		zap.String("operation", operationName),
		zap.String("component", component),
		zap.Int("jobs", len(jobs)),
		zap.Int("cpus", params.NumCPUs),
		zap.Float64("chunk_unit", params.ChunkUnit),
		zap.Float64("quantum", params.QuantumTime))
}

func logOutcome(logger *zap.Logger, operationName string, duration time.Duration, res *strf.Result, err error) {
	if err != nil {
		logger.Error("Simulation failed",
			zap.String("operation", operationName),
			zap.String("component", component),
			zap.Duration("duration", duration),
			zap.Error(err))
		return
	}
	logger.Info("Simulation completed",
		zap.String("operation", operationName),
		zap.String("component", component),
		zap.Duration("duration", duration),
		zap.Int("chunks", len(res.Gantt)),
		zap.Int("rounds", res.Rounds),
		zap.Float64("makespan", res.Makespan),
		zap.Float64("average_turnaround", res.AverageTurnaround))
	if res.Stalls > 0 {
		logger.Warn("Simulation stalled",
			zap.String("operation", operationName),
			zap.String("component", component),
			zap.Int("stalls", res.Stalls))
	}
}
