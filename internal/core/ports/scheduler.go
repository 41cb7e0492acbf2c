package ports

import "time"

// Scheduler runs a function once after a delay. Dispatch uses it to expire
// unanswered delivery requests; the periodic sweep job covers timers lost to
// a process restart.
type Scheduler interface {
	AfterFunc(delay time.Duration, fn func())
}
