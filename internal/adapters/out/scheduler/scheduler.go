// Package scheduler implements the timer port with the runtime's timers.
// Timers are in-process only; the periodic sweep job covers timers lost to a
// restart.
package scheduler

import "time"

// TimeScheduler runs functions once after a delay using time.AfterFunc.
type TimeScheduler struct{}

// NewTimeScheduler creates the scheduler.
func NewTimeScheduler() *TimeScheduler {
	return &TimeScheduler{}
}

// AfterFunc schedules fn to run once after delay in its own goroutine.
func (s *TimeScheduler) AfterFunc(delay time.Duration, fn func()) {
	time.AfterFunc(delay, fn)
}
