package ports

import "context"

// Runner executes commands of the UI sub-project.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type Runner interface {
	// Run executes argv in dir, inheriting the console streams, and waits for
	// it to finish.
	Run(ctx context.Context, dir string, argv []string) error

	// StartDetached starts argv in dir in its own session and returns without
	// waiting. The process is never reaped by the caller.
	StartDetached(dir string, argv []string) error
}
