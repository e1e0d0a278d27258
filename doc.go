// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package strf simulates shortest-remaining-time-first (SRTF) scheduling of a
// set of jobs across several identical processors.
//
// Two knobs distinguish it from textbook SRTF. Each job is sliced into chunks
// no longer than a chunk unit, and a job never holds a processor for more
// than one chunk at a time; when a chunk ends the job competes for a
// processor again with its reduced remaining time. Separately, a quantum
// limits how often the scheduler may make decisions: after a scheduling round
// at time T no new chunk is dispatched before T plus the quantum, even if
// processors free up in between. The quantum gates dispatch only and never
// preempts a running chunk.
//
// The simulation runs in logical time and jumps directly from one event (a
// processor freeing, a job arriving, the quantum gate reopening) to the next.
// Its result is a deterministic trace: per-job timing, one GanttEvent per
// executed chunk, and one QueueSnapshot of the waiting jobs per scheduling
// round. Simulate keeps no state between calls and may be used concurrently.
// Progress can be observed by registering an Observer; package otstrf
// provides observers and wrappers for logging, metrics, and tracing.
package strf
