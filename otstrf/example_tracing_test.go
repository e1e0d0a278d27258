// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otstrf_test

import (
	"context"
	"fmt"
	"io"

	strf "github.com/petenewcomb/strf-go"
	"github.com/petenewcomb/strf-go/otstrf"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/trace"
)

// Example demonstrating how to trace a simulation
func Example_tracing() {
	// Configure a stdout exporter; discard its output for the example
	exporter, _ := stdouttrace.New(stdouttrace.WithWriter(io.Discard))
	tp := trace.NewTracerProvider(
		trace.WithSampler(trace.AlwaysSample()),
		trace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(tp)
	defer tp.Shutdown(context.Background())

	ctx, rootSpan := otel.Tracer("example").Start(context.Background(), "handle-request")
	defer rootSpan.End()

	jobs := []strf.Job{
		{ID: "J1", ArrivalTime: 0, BurstTime: 3},
		{ID: "J2", ArrivalTime: 1, BurstTime: 1},
	}
	res, err := otstrf.TracedSimulate(ctx, "simulate", jobs, strf.Params{NumCPUs: 1, ChunkUnit: 1, QuantumTime: 1})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for _, jr := range res.Jobs {
		fmt.Printf("%s: %v -> %v\n", jr.ID, jr.StartTime, jr.EndTime)
	}

	// Output:
	// J1: 0 -> 4
	// J2: 1 -> 2
}
