// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package workload

import (
	"fmt"
	"math/rand/v2"

	strf "github.com/petenewcomb/strf-go"
	"pgregory.net/rapid"
)

var DefaultConfig = Config{
	JobCount:    BiasedIntConfig{Min: 1, Med: 4, Max: 12},
	NumCPUs:     BiasedIntConfig{Min: 1, Med: 2, Max: 6},
	ArrivalTime: BiasedStepConfig{Step: 0.5, BiasedIntConfig: BiasedIntConfig{Min: 0, Med: 0, Max: 20}},
	BurstTime:   BiasedStepConfig{Step: 0.5, BiasedIntConfig: BiasedIntConfig{Min: 1, Med: 4, Max: 20}},
	ChunkUnit:   BiasedStepConfig{Step: 0.25, BiasedIntConfig: BiasedIntConfig{Min: 1, Med: 4, Max: 16}},
	QuantumTime: BiasedStepConfig{Step: 0.25, BiasedIntConfig: BiasedIntConfig{Min: 1, Med: 4, Max: 16}},
}

// DecimalConfig draws times in steps of 0.1 and 0.3, which have no exact
// binary representation.
var DecimalConfig = Config{
	JobCount:    BiasedIntConfig{Min: 1, Med: 4, Max: 12},
	NumCPUs:     BiasedIntConfig{Min: 1, Med: 2, Max: 6},
	ArrivalTime: BiasedStepConfig{Step: 0.3, BiasedIntConfig: BiasedIntConfig{Min: 0, Med: 0, Max: 20}},
	BurstTime:   BiasedStepConfig{Step: 0.1, BiasedIntConfig: BiasedIntConfig{Min: 1, Med: 30, Max: 100}},
	ChunkUnit:   BiasedStepConfig{Step: 0.1, BiasedIntConfig: BiasedIntConfig{Min: 1, Med: 3, Max: 20}},
	QuantumTime: BiasedStepConfig{Step: 0.3, BiasedIntConfig: BiasedIntConfig{Min: 1, Med: 3, Max: 10}},
}

type Config struct {
	JobCount    BiasedIntConfig
	NumCPUs     BiasedIntConfig
	ArrivalTime BiasedStepConfig
	BurstTime   BiasedStepConfig
	ChunkUnit   BiasedStepConfig
	QuantumTime BiasedStepConfig
}

// Draw generates a valid job set and parameters.
func (c *Config) Draw(t *rapid.T) ([]strf.Job, strf.Params) {
	params := strf.Params{
		NumCPUs:     c.NumCPUs.Draw(t, "numCPUs"),
		ChunkUnit:   c.ChunkUnit.Draw(t, "chunkUnit"),
		QuantumTime: c.QuantumTime.Draw(t, "quantumTime"),
	}
	n := c.JobCount.Draw(t, "jobCount")
	jobs := make([]strf.Job, n)
	for i := range jobs {
		jobs[i] = strf.Job{
			ID:          JobID(i),
			ArrivalTime: c.ArrivalTime.Draw(t, "arrivalTime"),
			BurstTime:   c.BurstTime.Draw(t, "burstTime"),
		}
	}
	return jobs, params
}

// JobID returns the conventional name of the job at position i: J1, J2, and
// so on.
func JobID(i int) string {
	return fmt.Sprintf("J%d", i+1)
}

// Random returns n jobs with arrival times drawn from {0, 0.5, ..., 10} and
// burst times from {1, 1.5, ..., 10}.
func Random(r *rand.Rand, n int) []strf.Job {
	jobs := make([]strf.Job, n)
	for i := range jobs {
		jobs[i] = strf.Job{
			ID:          JobID(i),
			ArrivalTime: float64(r.IntN(21)) / 2,
			BurstTime:   float64(r.IntN(19)+2) / 2,
		}
	}
	return jobs
}

// NewRand returns a deterministic generator for Random.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
