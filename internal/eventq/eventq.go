// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package eventq provides the future-event queue used to advance simulated
// time directly to the next instant at which simulation state can change.
package eventq

import (
	"cmp"

	"github.com/addrummond/heap"
)

// Queue is a min-heap of event times. Times may be pushed in any order and
// more than once. The zero value is an empty queue ready to use.
type Queue struct {
	heap heap.Heap[event, heap.Min]
	size int
}

type event struct {
	Time float64
}

func (a *event) Cmp(b *event) int {
	return cmp.Compare(a.Time, b.Time)
}

// Push schedules an event at time t.
func (q *Queue) Push(t float64) {
	heap.PushOrderable(&q.heap, event{Time: t})
	q.size++
}

// Next discards every event at or before now and returns the earliest
// remaining event time, or false if none remains.
func (q *Queue) Next(now float64) (float64, bool) {
	for {
		e, ok := heap.Peek(&q.heap)
		if !ok {
			return 0, false
		}
		if e.Time > now {
			return e.Time, true
		}
		_, _ = heap.PopOrderable(&q.heap)
		q.size--
	}
}

// Len returns the number of pending events, including any that Next would
// discard as stale.
func (q *Queue) Len() int {
	return q.size
}
