package event

import "sort"

// scheduled pairs an Event with the tick it should fire on and the
// order it was inserted in, so ties break by insertion order rather
// than an arbitrary slice-sort order.
type scheduled struct {
	atTick    uint64
	insertSeq uint64
	event     Event
}

// Scheduler holds future events until their tick arrives. It is not
// safe for concurrent use — the simulation kernel is single-threaded
// by design (SPEC_FULL.md §5).
type Scheduler struct {
	pending []scheduled
	nextSeq uint64
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Schedule enqueues ev to fire once currentTick reaches atTick.
func (s *Scheduler) Schedule(ev Event, atTick uint64) {
	s.pending = append(s.pending, scheduled{atTick: atTick, insertSeq: s.nextSeq, event: ev})
	s.nextSeq++
}

// Drain removes and returns every event with atTick <= currentTick, in
// ascending (atTick, insertSeq) order, leaving later events queued.
func (s *Scheduler) Drain(currentTick uint64) []Event {
	sort.SliceStable(s.pending, func(i, j int) bool {
		if s.pending[i].atTick != s.pending[j].atTick {
			return s.pending[i].atTick < s.pending[j].atTick
		}
		return s.pending[i].insertSeq < s.pending[j].insertSeq
	})

	var due []Event
	var remaining []scheduled
	for _, sc := range s.pending {
		if sc.atTick <= currentTick {
			due = append(due, sc.event)
		} else {
			remaining = append(remaining, sc)
		}
	}
	s.pending = remaining
	return due
}

// Len reports how many events remain queued.
func (s *Scheduler) Len() int { return len(s.pending) }
