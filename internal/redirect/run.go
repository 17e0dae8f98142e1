package redirect

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ExitError represents a child that exited with a non-zero status.
// It carries the code so callers can propagate it without extra messaging.
type ExitError struct {
	Code int
	// Signal is the name of the terminating signal, empty for a normal exit.
	Signal string
}

func (e *ExitError) Error() string {
	if e.Signal != "" {
		return fmt.Sprintf("terminated by %s (status %d)", e.Signal, e.Code)
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Run spawns req.Command with req.Args on the given streams and waits for
// it. The child inherits the full environment and working directory.
// A non-zero exit is returned as *ExitError; anything else (command not
// found, not executable) is returned as-is.
func Run(ctx context.Context, req *Request, s *Streams) error {
	cmd := exec.CommandContext(ctx, req.Command, req.Args...)
	cmd.Stdin = s.Stdin
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code, sig := exitStatus(exitErr)
			return &ExitError{Code: code, Signal: sig}
		}
		return fmt.Errorf("launch %s: %w", req.Command, err)
	}
	return nil
}

// Execute opens the streams for req, runs the child and closes every
// opened file before returning, whatever the outcome.
func Execute(ctx context.Context, req *Request, std Std) (err error) {
	s, err := Open(req, std)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close redirected output: %w", cerr)
		}
	}()
	return Run(ctx, req, s)
}
