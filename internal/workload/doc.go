// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package workload generates job sets and simulation parameters. Draw
// produces them from rapid generators for property-based tests, biased toward
// the small values and boundary cases where scheduling decisions interact.
// Random reproduces the half-unit job sets of an interactive "randomize"
// control from a seed.
package workload
