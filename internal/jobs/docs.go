// Package jobs contains the background jobs that keep the dispatch pipeline
// moving: the outbox relay that publishes captured domain events to the
// broker, and the timeout sweep that expires courier requests whose in-process
// timer was lost, for example across a restart.
package jobs
