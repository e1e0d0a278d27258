// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package strf

import (
	"fmt"
	"math"
)

// DefaultParams holds the parameters used when a caller supplies none.
var DefaultParams = Params{
	NumCPUs:     2,
	ChunkUnit:   1,
	QuantumTime: 1,
}

// Params are the scalar knobs of a simulation.
type Params struct {
	// NumCPUs is the number of identical processors.
	NumCPUs int `json:"numCPUs"`

	// ChunkUnit caps how long a job may occupy a processor per dispatch.
	ChunkUnit float64 `json:"chunkUnit"`

	// QuantumTime is the minimum interval between scheduling rounds. It
	// gates new dispatches only; running chunks are never preempted.
	QuantumTime float64 `json:"quantumTime"`
}

// Validate returns an error wrapping ErrInvalidParameter if any parameter
// is not positive and finite.
func (p Params) Validate() error {
	if p.NumCPUs <= 0 {
		return fmt.Errorf("%w: processor count %d, want > 0", ErrInvalidParameter, p.NumCPUs)
	}
	if !positiveFinite(p.ChunkUnit) {
		return fmt.Errorf("%w: chunk unit %v, want a finite value > 0", ErrInvalidParameter, p.ChunkUnit)
	}
	if !positiveFinite(p.QuantumTime) {
		return fmt.Errorf("%w: quantum %v, want a finite value > 0", ErrInvalidParameter, p.QuantumTime)
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// MaxChunksPerJob bounds how many chunks one job may be sliced into, that is
// burstTime/chunkUnit. Simulation time and memory grow with the chunk count.
const MaxChunksPerJob = 1 << 20

// Validate checks params and jobs together. Beyond Params.Validate and
// ValidateJobs it rejects, with an error wrapping ErrInvalidParameter, a
// chunk unit that would slice any job into more than MaxChunksPerJob chunks.
func Validate(jobs []Job, params Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if err := ValidateJobs(jobs); err != nil {
		return err
	}
	for _, job := range jobs {
		if n := job.BurstTime / params.ChunkUnit; n > MaxChunksPerJob {
			return fmt.Errorf("%w: chunk unit %v slices job %q into %.0f chunks, limit is %d",
				ErrInvalidParameter, params.ChunkUnit, job.ID, math.Ceil(n), MaxChunksPerJob)
		}
	}
	return nil
}

// ChunkCount returns the number of chunks Chunks produces for a job of the
// given burst time, up to rounding of a final residual chunk.
func ChunkCount(burstTime, chunkUnit float64) int {
	return int(math.Ceil(burstTime / chunkUnit))
}
