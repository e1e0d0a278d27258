// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package strf

import (
	"cmp"
	"math"
	"slices"

	"github.com/gammazero/deque"
	"github.com/petenewcomb/strf-go/internal/eventq"
)

// CompletionEpsilon is the authoritative completion test: a job is complete
// once its remaining time is within this distance of zero. Repeated
// subtraction of chunk durations may leave residue of this order.
const CompletionEpsilon = 0.001

// DefaultStallIncrement is how far simulated time advances when no future
// event exists while jobs remain incomplete.
const DefaultStallIncrement = 0.1

// Option customizes a call to Simulate.
type Option func(*options)

type options struct {
	observer       Observer
	stallIncrement float64
}

// WithObserver registers an observer for simulation events. Multiple
// observers may be registered; they are called in registration order.
func WithObserver(o Observer) Option {
	if o == nil {
		panic("observer must be non-nil")
	}
	return func(opts *options) {
		if opts.observer == nil {
			opts.observer = o
		} else {
			opts.observer = MultiObserver{opts.observer, o}
		}
	}
}

// WithStallIncrement overrides DefaultStallIncrement.
func WithStallIncrement(d float64) Option {
	if !positiveFinite(d) {
		panic("stall increment must be positive")
	}
	return func(opts *options) {
		opts.stallIncrement = d
	}
}

// Simulate runs shortest-remaining-time-first scheduling of jobs across
// params.NumCPUs processors and returns the resulting trace. Jobs are
// dispatched one chunk at a time, and scheduling rounds are separated by at
// least params.QuantumTime. Input failing Validate is rejected with an error
// wrapping ErrInvalidParameter, ErrInvalidJob, or ErrNoJobs.
//
// Simulate is a pure function of its arguments and may be called
// concurrently.
func Simulate(jobs []Job, params Params, opts ...Option) (*Result, error) {
	if err := Validate(jobs, params); err != nil {
		return nil, err
	}
	o := options{stallIncrement: DefaultStallIncrement}
	for _, opt := range opts {
		opt(&o)
	}
	if o.observer == nil {
		o.observer = ObserverFuncs{}
	}
	s := newSimulation(jobs, params, &o)
	s.run()
	return s.result(), nil
}

type jobState struct {
	Job
	remaining  float64
	chunks     deque.Deque[float64]
	running    bool
	started    bool
	done       bool
	start      float64
	end        float64
	chunkCount int
}

type processorState struct {
	busyUntil float64
	job       int // index into simulation.jobs, or -1 when idle
}

type simulation struct {
	params    Params
	opts      *options
	jobs      []jobState
	cpus      []processorState
	events    eventq.Queue
	now       float64
	nextRound float64
	completed int
	rounds    int
	stalls    int
	gantt     []GanttEvent
	queue     []QueueSnapshot

	// scratch space reused across rounds
	idle  []int
	ready []int
}

func newSimulation(jobs []Job, params Params, opts *options) *simulation {
	s := &simulation{
		params: params,
		opts:   opts,
		jobs:   make([]jobState, len(jobs)),
		cpus:   make([]processorState, params.NumCPUs),
	}
	for i, job := range jobs {
		js := &s.jobs[i]
		js.Job = job
		js.remaining = job.BurstTime
		for _, c := range Chunks(job.BurstTime, params.ChunkUnit) {
			js.chunks.PushBack(c)
		}
		if job.ArrivalTime > s.now {
			s.events.Push(job.ArrivalTime)
		}
	}
	for i := range s.cpus {
		s.cpus[i].job = -1
	}
	return s
}

func (s *simulation) run() {
	for s.completed < len(s.jobs) {
		s.releaseProcessors()
		s.collectIdle()
		s.collectReady()
		if s.now < s.nextRound || len(s.idle) == 0 || len(s.ready) == 0 {
			s.advance()
			continue
		}
		slices.SortFunc(s.ready, s.compare)
		s.snapshot()
		s.dispatch()
		s.rounds++
		s.nextRound = s.now + s.params.QuantumTime
		s.events.Push(s.nextRound)
		s.advance()
	}
}

// releaseProcessors frees every processor whose chunk has finished by now.
// The job it ran becomes eligible again if it still has work left.
func (s *simulation) releaseProcessors() {
	for i := range s.cpus {
		cpu := &s.cpus[i]
		if cpu.job >= 0 && cpu.busyUntil <= s.now {
			s.jobs[cpu.job].running = false
			cpu.job = -1
		}
	}
}

func (s *simulation) collectIdle() {
	s.idle = s.idle[:0]
	for i := range s.cpus {
		if cpu := &s.cpus[i]; cpu.job < 0 && cpu.busyUntil <= s.now {
			s.idle = append(s.idle, i)
		}
	}
}

func (s *simulation) collectReady() {
	s.ready = s.ready[:0]
	for i := range s.jobs {
		js := &s.jobs[i]
		if !js.done && !js.running && js.remaining > 0 && js.ArrivalTime <= s.now {
			s.ready = append(s.ready, i)
		}
	}
}

// compare orders jobs by remaining time, then arrival time, then input
// position.
func (s *simulation) compare(a, b int) int {
	ja, jb := &s.jobs[a], &s.jobs[b]
	if c := cmp.Compare(ja.remaining, jb.remaining); c != 0 {
		return c
	}
	if c := cmp.Compare(ja.ArrivalTime, jb.ArrivalTime); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}

func (s *simulation) snapshot() {
	snap := QueueSnapshot{
		Time:    s.now,
		Entries: make([]QueueEntry, len(s.ready)),
	}
	for i, j := range s.ready {
		snap.Entries[i] = QueueEntry{
			JobID:         s.jobs[j].ID,
			RemainingTime: s.jobs[j].remaining,
		}
	}
	s.queue = append(s.queue, snap)
	s.opts.observer.OnRound(snap)
}

func (s *simulation) dispatch() {
	for i, p := range s.idle {
		if i >= len(s.ready) {
			break
		}
		j := s.ready[i]
		js := &s.jobs[j]
		if !js.started {
			js.started = true
			js.start = s.now
		}
		chunk := js.chunks.PopFront()
		js.chunkCount++
		js.running = true

		cpu := &s.cpus[p]
		cpu.job = j
		cpu.busyUntil = s.now + chunk
		s.events.Push(cpu.busyUntil)

		event := GanttEvent{
			StartTime: s.now,
			Processor: ProcessorID(p),
			JobID:     js.ID,
			Duration:  chunk,
		}
		s.gantt = append(s.gantt, event)
		s.opts.observer.OnDispatch(event)

		js.remaining -= chunk
		if math.Abs(js.remaining) < CompletionEpsilon || js.chunks.Len() == 0 {
			js.remaining = 0
			js.chunks.Clear()
			js.done = true
			js.end = cpu.busyUntil
			s.completed++
			s.opts.observer.OnComplete(s.jobResult(j))
		}
	}
}

// advance moves simulated time to the next instant at which a processor
// frees, a job arrives, or the scheduling gate reopens.
func (s *simulation) advance() {
	if next, ok := s.events.Next(s.now); ok {
		s.now = next
		return
	}
	s.stalls++
	s.opts.observer.OnStall(s.now)
	s.now += s.opts.stallIncrement
}
