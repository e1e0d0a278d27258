// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otstrf

import (
	"context"

	strf "github.com/petenewcomb/strf-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingObserver returns an observer that adds a span event for each job
// completion and each stall to the span carried by ctx.
func TracingObserver(ctx context.Context) strf.Observer {
	span := trace.SpanFromContext(ctx)
	return strf.ObserverFuncs{
		Complete: func(job strf.JobResult) {
			span.AddEvent("job completed", trace.WithAttributes(
				attribute.String("job", job.ID),
				attribute.Float64("end", job.EndTime),
				attribute.Float64("turnaround", job.TurnaroundTime)))
		},
		Stall: func(at float64) {
			span.AddEvent("stall", trace.WithAttributes(
				attribute.Float64("time", at)))
		},
	}
}

// TracedSimulate runs strf.Simulate inside a span with the given operation
// name. The span carries the simulation parameters and headline results as
// attributes and a TracingObserver's events.
func TracedSimulate(
	ctx context.Context,
	operationName string,
	jobs []strf.Job,
	params strf.Params,
	opts ...strf.Option,
) (*strf.Result, error) {
	return tracedSimulate(operationName, simulate)(ctx, jobs, params, opts...)
}

func tracedSimulate(operationName string, next simulateFunc) simulateFunc {
	return func(ctx context.Context, jobs []strf.Job, params strf.Params, opts ...strf.Option) (*strf.Result, error) {
		tracer := otel.Tracer(component)
		ctx, span := tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.Int("strf.jobs", len(jobs)),
			attribute.Int("strf.cpus", params.NumCPUs),
			attribute.Float64("strf.chunk_unit", params.ChunkUnit),
			attribute.Float64("strf.quantum", params.QuantumTime)))
		defer span.End()

		res, err := next(ctx, jobs, params, withOption(opts, strf.WithObserver(TracingObserver(ctx)))...)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		span.SetAttributes(
			attribute.Int("strf.chunks", len(res.Gantt)),
			attribute.Int("strf.rounds", res.Rounds),
			attribute.Int("strf.stalls", res.Stalls),
			attribute.Float64("strf.makespan", res.Makespan),
			attribute.Float64("strf.average_turnaround", res.AverageTurnaround))
		return res, nil
	}
}
