// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package otstrf

import (
	"context"

	strf "github.com/petenewcomb/strf-go"
	"go.uber.org/zap"
)

// simulateFunc is the shape shared by strf.Simulate and each wrapper in this
// package, so that wrappers can be stacked.
type simulateFunc func(ctx context.Context, jobs []strf.Job, params strf.Params, opts ...strf.Option) (*strf.Result, error)

func simulate(_ context.Context, jobs []strf.Job, params strf.Params, opts ...strf.Option) (*strf.Result, error) {
	return strf.Simulate(jobs, params, opts...)
}

// withOption returns opts plus opt without writing into the caller's backing
// array.
func withOption(opts []strf.Option, opt strf.Option) []strf.Option {
	return append(opts[:len(opts):len(opts)], opt)
}

// InstrumentedSimulate combines tracing, metrics, and logging into a single
// call. It is equivalent to TracedSimulate wrapped around MetricsSimulate
// wrapped around LoggedSimulate. Logging uses zap.L(); metrics and tracing
// use the global OpenTelemetry providers.
func InstrumentedSimulate(
	ctx context.Context,
	operationName string,
	jobs []strf.Job,
	params strf.Params,
	opts ...strf.Option,
) (*strf.Result, error) {
	// Apply wrappers inside-out:
	// 1. First add logging
	logged := loggedSimulate(zap.L(), operationName, simulate)

	// 2. Then add metrics
	metered := metricsSimulate(operationName, logged)

	// 3. Finally wrap the whole run in a span
	return tracedSimulate(operationName, metered)(ctx, jobs, params, opts...)
}
