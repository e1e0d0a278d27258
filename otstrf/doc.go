// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package otstrf instruments strf simulations with structured logging (zap),
// metrics, and tracing (OpenTelemetry). The strf package itself carries no
// observability dependencies; this package supplies them through strf
// Observers and through wrappers around strf.Simulate.
package otstrf
