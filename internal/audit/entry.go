package audit

import "time"

// Entry represents a single audit log record.
type Entry struct {
	Seq      uint64    `json:"seq"`
	ID       string    `json:"id"` // random invocation ID
	Time     time.Time `json:"ts"`
	PrevHash string    `json:"prev_hash"`
	Command  string    `json:"command"`          // absolute command path
	Args     []string  `json:"args"`             // forwarded arguments
	Stdin    string    `json:"stdin,omitempty"`  // --in path
	Stdout   string    `json:"stdout,omitempty"` // --out path
	Stderr   string    `json:"stderr,omitempty"` // --err path
	ExitCode int       `json:"exit_code"`        // status this process exited with
	Signal   string    `json:"signal,omitempty"` // terminating signal, if any
	Error    string    `json:"error,omitempty"`  // setup or launch failure
	Duration float64   `json:"duration_ms"`      // execution time in milliseconds
	Cwd      string    `json:"cwd"`              // working directory
	Hash     string    `json:"hash"`             // SHA-256 of this entry (with hash field empty)
}

// Record carries the facts about one invocation that Logger.Log turns
// into an Entry.
type Record struct {
	Command  string
	Args     []string
	Stdin    string
	Stdout   string
	Stderr   string
	ExitCode int
	Signal   string
	Error    string
	Duration time.Duration
	Cwd      string
}
