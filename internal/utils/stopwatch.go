package utils

import (
	"context"
	"sync"
	"time"
)

// Keeps track of the time that passes between `Stopwatch.Resume()`
// and `Stopwatch.Pause()` calls, like a chess clock.
//
// Once the summary running time exceeds the budget, `onExpire` is
// called exactly once and the stopwatch closes itself.
type Stopwatch struct {
	mu        sync.Mutex
	budget    time.Duration
	spent     time.Duration
	resumedAt time.Time
	timer     *time.Timer
	round     int
	closed    bool
	onExpire  func()
}

// Creates Stopwatch with given budget and expiration callback.
//
// Created Stopwatch is in PAUSED state.
func NewStopwatch(budget time.Duration, onExpire func()) *Stopwatch {
	return &Stopwatch{
		budget:   budget,
		onExpire: onExpire,
	}
}

func (s *Stopwatch) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.timer != nil {
		return
	}

	s.resumedAt = time.Now()
	s.round++

	round := s.round
	s.timer = time.AfterFunc(max(s.budget-s.spent, 0), func() {
		s.expire(round)
	})
}

func (s *Stopwatch) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer == nil {
		return
	}

	s.timer.Stop()
	s.timer = nil
	s.spent += time.Since(s.resumedAt)
}

// Returns time spent in RUNNING state so far.
func (s *Stopwatch) Spent() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		return s.spent + time.Since(s.resumedAt)
	}
	return s.spent
}

// Stops the stopwatch for good. Safe to call more than once.
func (s *Stopwatch) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Stopwatch) expire(round int) {
	s.mu.Lock()
	// Timer could be stopped or replaced right before firing.
	if s.closed || s.timer == nil || s.round != round {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.timer = nil
	s.spent = s.budget
	s.mu.Unlock()

	s.onExpire()
}

// Creates context and stopwatch bounded together.
//
// When stopwatch summary exceeds `budget`, context is cancelled
// with `cause` cause.
//
// When the parent context is done, stopwatch is closed.
func NewStopwatchContext(parent context.Context, budget time.Duration, cause error) (context.Context, *Stopwatch) {
	ctx, cancel := context.WithCancelCause(parent)
	sw := NewStopwatch(budget, func() {
		cancel(cause)
	})

	context.AfterFunc(ctx, sw.Close)

	return ctx, sw
}
