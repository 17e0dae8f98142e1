package cli

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// Options are the parsed command-line settings for one invocation.
type Options struct {
	In     string
	Out    string
	Err    string
	Config string

	Verbose bool
	Help    bool
	Version bool

	Audit      string
	AuditLines int

	// Command and Args come from the first non-flag token onwards.
	Command string
	Args    []string
}

func newFlagSet(opts *Options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("redirect", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	// Everything after COMMAND belongs to the child, flag-like or not.
	fs.SetInterspersed(false)
	fs.SortFlags = false

	fs.StringVar(&opts.In, "in", "", "read the child's stdin from `FILE`")
	fs.StringVar(&opts.Out, "out", "", "write the child's stdout to `FILE` (truncated)")
	fs.StringVar(&opts.Err, "err", "", "write the child's stderr to `FILE` (truncated)")
	fs.StringVar(&opts.Config, "config", "", "load settings from YAML `FILE`")
	fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "log debug diagnostics to stderr")
	fs.StringVar(&opts.Audit, "audit", "", "audit log operation: verify or tail")
	fs.IntVar(&opts.AuditLines, "audit-lines", 20, "entries shown by --audit tail")
	fs.BoolVar(&opts.Version, "version", false, "show version")
	fs.BoolVarP(&opts.Help, "help", "h", false, "show this help")
	return fs
}

// parseArgs parses args (without the program name).
func parseArgs(args []string) (*Options, *pflag.FlagSet, error) {
	opts := &Options{}
	fs := newFlagSet(opts)
	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	if rest := fs.Args(); len(rest) > 0 {
		opts.Command = rest[0]
		opts.Args = rest[1:]
	}
	if opts.Audit != "" && opts.Audit != "verify" && opts.Audit != "tail" {
		return nil, fs, fmt.Errorf("--audit: unknown operation %q", opts.Audit)
	}
	return opts, fs, nil
}
