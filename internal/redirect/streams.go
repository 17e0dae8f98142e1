package redirect

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// Std holds the caller's own streams. Streams that are not redirected
// are inherited from here.
type Std struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// OSStd returns the calling process's standard streams.
func OSStd() Std {
	return Std{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Streams are the three streams handed to the child, plus the files that
// were opened to back them.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	files []*os.File
}

// Open prepares the child's streams for req. The input file, if any, is
// read into memory in full. Output and error files are created or
// truncated. If any step fails, files opened so far are closed and
// nothing is left for the caller to release.
func Open(req *Request, std Std) (*Streams, error) {
	s := &Streams{
		Stdin:  std.Stdin,
		Stdout: std.Stdout,
		Stderr: std.Stderr,
	}

	if req.In != "" {
		data, err := os.ReadFile(req.In)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		s.Stdin = bytes.NewReader(data)
	}

	var out *os.File
	if req.Out != "" {
		f, err := os.Create(req.Out)
		if err != nil {
			return nil, fmt.Errorf("open output: %w", err)
		}
		s.files = append(s.files, f)
		s.Stdout = f
		out = f
	}

	if req.Err != "" {
		if out != nil && sameFile(out, req.Err) {
			s.Stderr = out
			return s, nil
		}
		f, err := os.Create(req.Err)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("open error output: %w", err)
		}
		s.files = append(s.files, f)
		s.Stderr = f
	}

	return s, nil
}

// Close releases every file opened by Open. It is safe to call more than
// once.
func (s *Streams) Close() error {
	var errs []error
	for _, f := range s.files {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.files = nil
	return errors.Join(errs...)
}

// sameFile reports whether path names the already-open file f, so that
// --out and --err pointing at one file share a single handle.
func sameFile(f *os.File, path string) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	pi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return os.SameFile(fi, pi)
}
