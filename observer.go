// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package strf

// Observer receives simulation events as they happen. Calls are made
// synchronously from the goroutine running Simulate, in simulation order:
// OnRound precedes the OnDispatch calls of its round, and OnComplete follows
// the OnDispatch of a job's final chunk.
type Observer interface {
	// OnRound is called at the start of each scheduling round with the
	// waiting jobs the round will choose from.
	OnRound(snapshot QueueSnapshot)

	// OnDispatch is called for each chunk assigned to a processor.
	OnDispatch(event GanttEvent)

	// OnComplete is called when a job's final chunk has been dispatched.
	OnComplete(job JobResult)

	// OnStall is called when no future event exists and simulated time is
	// advanced by the stall increment from the given time.
	OnStall(time float64)
}

// ObserverFuncs adapts individual functions to the Observer interface. Nil
// fields are ignored.
type ObserverFuncs struct {
	Round    func(snapshot QueueSnapshot)
	Dispatch func(event GanttEvent)
	Complete func(job JobResult)
	Stall    func(time float64)
}

var _ Observer = ObserverFuncs{}

func (o ObserverFuncs) OnRound(snapshot QueueSnapshot) {
	if o.Round != nil {
		o.Round(snapshot)
	}
}

func (o ObserverFuncs) OnDispatch(event GanttEvent) {
	if o.Dispatch != nil {
		o.Dispatch(event)
	}
}

func (o ObserverFuncs) OnComplete(job JobResult) {
	if o.Complete != nil {
		o.Complete(job)
	}
}

func (o ObserverFuncs) OnStall(time float64) {
	if o.Stall != nil {
		o.Stall(time)
	}
}

// MultiObserver forwards every event to each of its members in order.
type MultiObserver []Observer

var _ Observer = MultiObserver(nil)

func (m MultiObserver) OnRound(snapshot QueueSnapshot) {
	for _, o := range m {
		o.OnRound(snapshot)
	}
}

func (m MultiObserver) OnDispatch(event GanttEvent) {
	for _, o := range m {
		o.OnDispatch(event)
	}
}

func (m MultiObserver) OnComplete(job JobResult) {
	for _, o := range m {
		o.OnComplete(job)
	}
}

func (m MultiObserver) OnStall(time float64) {
	for _, o := range m {
		o.OnStall(time)
	}
}
