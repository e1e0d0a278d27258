// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package strf

import (
	"math"
)

// GanttEvent records one chunk executed on one processor.
type GanttEvent struct {
	StartTime float64     `json:"startTime"`
	Processor ProcessorID `json:"cpu"`
	JobID     string      `json:"jobId"`
	Duration  float64     `json:"duration"`
}

// EndTime returns the instant the chunk's processor became free.
func (e GanttEvent) EndTime() float64 {
	return e.StartTime + e.Duration
}

// QueueEntry is one waiting job within a QueueSnapshot.
type QueueEntry struct {
	JobID         string  `json:"jobId"`
	RemainingTime float64 `json:"remainingTime"`
}

// QueueSnapshot lists the jobs that were waiting at a scheduling round, in
// the order the scheduler considered them: shortest remaining time first,
// then earliest arrival. Remaining times are those before the round's
// dispatches.
type QueueSnapshot struct {
	Time    float64      `json:"time"`
	Entries []QueueEntry `json:"jobs"`
}

// JobResult is a Job together with the timing derived from its simulation.
type JobResult struct {
	Job
	StartTime      float64 `json:"startTime"`
	EndTime        float64 `json:"endTime"`
	TurnaroundTime float64 `json:"turnaroundTime"`
	WaitingTime    float64 `json:"waitingTime"`
	ChunkCount     int     `json:"chunkCount"`
}

// Result is the complete trace of a simulation.
type Result struct {
	Params Params `json:"params"`

	// Jobs are in the order they were supplied to Simulate.
	Jobs []JobResult `json:"jobs"`

	// Gantt holds one event per executed chunk in dispatch order.
	Gantt []GanttEvent `json:"ganttData"`

	// Queue holds one snapshot per scheduling round.
	Queue []QueueSnapshot `json:"queueEvents"`

	AverageTurnaround float64 `json:"averageTurnaround"`
	AverageWaiting    float64 `json:"averageWaiting"`
	Makespan          float64 `json:"makespan"`

	// Rounds counts scheduling rounds that dispatched at least one chunk.
	Rounds int `json:"rounds"`

	// Stalls counts advances by the fixed stall increment. It is zero for
	// every valid input; a nonzero value indicates a scheduler defect.
	Stalls int `json:"stalls"`
}

// JobResult returns the result for the job with the given id.
func (r *Result) JobResult(id string) (JobResult, bool) {
	for _, jr := range r.Jobs {
		if jr.ID == id {
			return jr, true
		}
	}
	return JobResult{}, false
}

// MaxMarkers bounds the length of QuantumMarkers and TimeMarkers.
const MaxMarkers = 1000

// QuantumMarkers returns the multiples of the quantum from zero through the
// first one at or beyond the makespan. When that would exceed MaxMarkers
// entries, only every k-th multiple is returned, with k the smallest stride
// that fits.
func (r *Result) QuantumMarkers() []float64 {
	return markers(r.Makespan, r.Params.QuantumTime)
}

// TimeMarkers returns whole time units from zero through the first one at or
// beyond the makespan, thinned like QuantumMarkers.
func (r *Result) TimeMarkers() []float64 {
	return markers(r.Makespan, 1)
}

func markers(limit, step float64) []float64 {
	if !positiveFinite(step) || math.IsNaN(limit) || math.IsInf(limit, 0) || limit < 0 {
		return nil
	}
	if steps := limit / step; steps > MaxMarkers-1 {
		// The stride leaves one marker of slack for rounding.
		step *= math.Ceil(steps / (MaxMarkers - 2))
		if math.IsInf(step, 0) {
			step = limit
		}
	}
	n := 1
	if limit > 0 {
		n = int(math.Ceil(limit/step)) + 1
	}
	ms := make([]float64, n)
	for i := range ms {
		ms[i] = float64(i) * step
	}
	if last := ms[n-1]; last < limit {
		ms = append(ms, last+step)
	}
	return ms
}

// Utilization returns, per processor, the fraction of the makespan spent
// executing chunks.
func (r *Result) Utilization() []float64 {
	busy := make([]float64, r.Params.NumCPUs)
	for _, e := range r.Gantt {
		busy[e.Processor] += e.Duration
	}
	if r.Makespan > 0 {
		for i := range busy {
			busy[i] /= r.Makespan
		}
	}
	return busy
}

func (s *simulation) result() *Result {
	r := &Result{
		Params: s.params,
		Jobs:   make([]JobResult, len(s.jobs)),
		Gantt:  s.gantt,
		Queue:  s.queue,
		Rounds: s.rounds,
		Stalls: s.stalls,
	}
	var totalTurnaround, totalWaiting float64
	for i := range s.jobs {
		jr := s.jobResult(i)
		r.Jobs[i] = jr
		totalTurnaround += jr.TurnaroundTime
		totalWaiting += jr.WaitingTime
		r.Makespan = max(r.Makespan, jr.EndTime)
	}
	n := float64(len(s.jobs))
	r.AverageTurnaround = totalTurnaround / n
	r.AverageWaiting = totalWaiting / n
	return r
}

func (s *simulation) jobResult(i int) JobResult {
	js := &s.jobs[i]
	turnaround := js.end - js.ArrivalTime
	return JobResult{
		Job:            js.Job,
		StartTime:      js.start,
		EndTime:        js.end,
		TurnaroundTime: turnaround,
		WaitingTime:    turnaround - js.BurstTime,
		ChunkCount:     js.chunkCount,
	}
}
