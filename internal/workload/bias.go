// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package workload

import (
	"fmt"

	"pgregory.net/rapid"
)

type BiasedIntConfig struct {
	Min int
	Med int
	Max int
}

func (c *BiasedIntConfig) Draw(t *rapid.T, name string) int {
	if c.Med < c.Min || c.Max < c.Med {
		panic(fmt.Sprint("invalid BiasedIntConfig:", *c))
	}
	return rapid.Custom(func(t *rapid.T) int {
		// Generate a value in the range [min-med, max-med] instead of [min,
		// max] to take advantage of rapid's bias toward generating numbers near
		// zero as well as at the provided bounds.
		return c.Med + rapid.IntRange(c.Min-c.Med, c.Max-c.Med).Draw(t, name+"(internal)")
	}).Draw(t, name)
}

// BiasedStepConfig draws multiples of Step between Min and Max steps,
// biased toward Med steps. With a power-of-two Step the generated times are
// exactly representable, so events coincide as often as they would with hand
// written workloads. A decimal Step such as 0.1 instead leaves floating point
// residue in sums of chunk durations.
type BiasedStepConfig struct {
	Step float64
	BiasedIntConfig
}

func (c *BiasedStepConfig) Draw(t *rapid.T, name string) float64 {
	if c.Step <= 0 {
		panic(fmt.Sprint("invalid BiasedStepConfig:", *c))
	}
	return c.Step * float64(c.BiasedIntConfig.Draw(t, name+"(steps)"))
}
