// Package shell runs the UI sub-project's commands.
package shell

import (
	"context"
	"os"
	"os/exec"

	"go.trai.ch/fxdev/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Runner = (*Runner)(nil)

// Runner executes commands with the console streams inherited, so npm and
// friends print straight to the developer's terminal.
type Runner struct{}

// NewRunner creates a runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes argv in dir and waits for it to finish. An empty argv is a
// no-op.
func (r *Runner) Run(ctx context.Context, dir string, argv []string) error {
	if len(argv) == 0 {
		return nil
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // user provided command
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitCode int
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
		return zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
	}

	return nil
}

// StartDetached starts argv in dir in its own session and returns without
// waiting. Stdin is not passed through, a detached session cannot own the
// terminal. A goroutine reaps the process so an early exit does not leave a
// zombie behind.
func (r *Runner) StartDetached(dir string, argv []string) error {
	if len(argv) == 0 {
		return nil
	}

	cmd := exec.Command(argv[0], argv[1:]...) //nolint:gosec // user provided command
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = sessionAttr()

	if err := cmd.Start(); err != nil {
		return zerr.Wrap(err, "failed to start command")
	}

	go func() { _ = cmd.Wait() }()

	return nil
}
