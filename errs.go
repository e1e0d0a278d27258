// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package strf

type constError string

func (e constError) Error() string {
	return string(e)
}

// ErrInvalidParameter is wrapped by errors describing a processor count, chunk
// unit, or quantum that is not positive and finite.
const ErrInvalidParameter = constError("invalid parameter")

// ErrInvalidJob is wrapped by errors describing a job with a negative arrival
// time, a non-positive burst time, or a missing or duplicate id.
const ErrInvalidJob = constError("invalid job")

// ErrNoJobs is returned when a simulation is requested for an empty job set.
const ErrNoJobs = constError("no jobs")
