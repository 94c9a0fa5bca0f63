package ports

import "context"

// Task is a unit of background work.
type Task func(ctx context.Context) error

// Runner executes sync passes off the caller's goroutine.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type Runner interface {
	// Submit queues task under name. It never blocks on task execution.
	Submit(name string, task Task)

	// Wait blocks until every submitted task has finished and returns their joined errors.
	Wait() error
}
