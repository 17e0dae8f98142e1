// Package redirect runs a single child process with its standard streams
// optionally connected to files.
package redirect

import (
	"fmt"
	"path/filepath"
)

// Request describes one redirected invocation.
type Request struct {
	// Command is the executable path. Resolve makes it absolute; it is
	// never looked up in PATH.
	Command string
	// Args are passed to the child verbatim, after argv[0].
	Args []string

	// In, Out and Err are optional file paths. An empty string leaves the
	// corresponding stream inherited from the caller.
	In  string
	Out string
	Err string
}

// Resolve rewrites Command as an absolute path relative to the current
// working directory. Symlinks are not evaluated.
func (r *Request) Resolve() error {
	if r.Command == "" {
		return fmt.Errorf("empty command")
	}
	abs, err := filepath.Abs(r.Command)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", r.Command, err)
	}
	r.Command = abs
	return nil
}

// Redirected reports whether any of the three streams is redirected.
func (r *Request) Redirected() bool {
	return r.In != "" || r.Out != "" || r.Err != ""
}
