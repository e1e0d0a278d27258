// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otstrf

import (
	"context"
	"errors"
	"time"

	strf "github.com/petenewcomb/strf-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// MetricsObserver returns an observer that records counts of rounds,
// dispatched chunks, completed jobs, and stalls, plus a histogram of job
// turnaround times. Instrument names are prefixed with metricName. A nil
// meter selects the global meter provider.
func MetricsObserver(ctx context.Context, meter metric.Meter, metricName string) (strf.Observer, error) {
	if meter == nil {
		meter = otel.GetMeterProvider().Meter(component)
	}

	rounds, err1 := meter.Int64Counter(metricName + ".rounds")
	chunks, err2 := meter.Int64Counter(metricName + ".chunks")
	completions, err3 := meter.Int64Counter(metricName + ".completions")
	stalls, err4 := meter.Int64Counter(metricName + ".stalls")
	turnaround, err5 := meter.Float64Histogram(metricName + ".turnaround")
	if err := errors.Join(err1, err2, err3, err4, err5); err != nil {
		return nil, err
	}

	return strf.ObserverFuncs{
		Round: func(strf.QueueSnapshot) {
			rounds.Add(ctx, 1)
		},
		Dispatch: func(strf.GanttEvent) {
			chunks.Add(ctx, 1)
		},
		Complete: func(job strf.JobResult) {
			completions.Add(ctx, 1)
			turnaround.Record(ctx, job.TurnaroundTime)
		},
		Stall: func(float64) {
			stalls.Add(ctx, 1)
		},
	}, nil
}

// MetricsSimulate runs strf.Simulate with a MetricsObserver attached and
// records the count, wall-clock duration, and error count of runs.
func MetricsSimulate(
	ctx context.Context,
	metricName string,
	jobs []strf.Job,
	params strf.Params,
	opts ...strf.Option,
) (*strf.Result, error) {
	return metricsSimulate(metricName, simulate)(ctx, jobs, params, opts...)
}

func metricsSimulate(metricName string, next simulateFunc) simulateFunc {
	return func(ctx context.Context, jobs []strf.Job, params strf.Params, opts ...strf.Option) (*strf.Result, error) {
		startTime := time.Now()
		meter := otel.GetMeterProvider().Meter(component)

		// Create metrics
		runCounter, _ := meter.Int64Counter(metricName + ".count")
		runDuration, _ := meter.Float64Histogram(metricName + ".duration")

		observer, err := MetricsObserver(ctx, meter, metricName)
		if err != nil {
			return nil, err
		}

		runCounter.Add(ctx, 1)
		res, err := next(ctx, jobs, params, withOption(opts, strf.WithObserver(observer))...)
		runDuration.Record(ctx, time.Since(startTime).Seconds())

		if err != nil {
			errorCounter, _ := meter.Int64Counter(metricName + ".errors")
			errorCounter.Add(ctx, 1)
		}
		return res, err
	}
}
