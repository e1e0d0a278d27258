// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package strf

import (
	"fmt"
	"math"
)

// Job is an immutable description of a unit of work: when it becomes
// eligible to run and how much processor time it needs in total.
type Job struct {
	ID          string  `json:"id"`
	ArrivalTime float64 `json:"arrivalTime"`
	BurstTime   float64 `json:"burstTime"`
}

// ValidateJobs checks a job set before simulation. It returns ErrNoJobs for an
// empty set and an error wrapping ErrInvalidJob for the first offending job.
func ValidateJobs(jobs []Job) error {
	if len(jobs) == 0 {
		return ErrNoJobs
	}
	seen := make(map[string]int, len(jobs))
	for i, job := range jobs {
		if job.ID == "" {
			return fmt.Errorf("%w: job %d has an empty id", ErrInvalidJob, i)
		}
		if j, ok := seen[job.ID]; ok {
			return fmt.Errorf("%w: jobs %d and %d share id %q", ErrInvalidJob, j, i, job.ID)
		}
		seen[job.ID] = i
		if math.IsNaN(job.ArrivalTime) || math.IsInf(job.ArrivalTime, 0) || job.ArrivalTime < 0 {
			return fmt.Errorf("%w: job %q has arrival time %v, want a finite value >= 0",
				ErrInvalidJob, job.ID, job.ArrivalTime)
		}
		if math.IsNaN(job.BurstTime) || math.IsInf(job.BurstTime, 0) || job.BurstTime <= 0 {
			return fmt.Errorf("%w: job %q has burst time %v, want a finite value > 0",
				ErrInvalidJob, job.ID, job.BurstTime)
		}
	}
	return nil
}
