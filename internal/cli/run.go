// Package cli turns a command line into one redirected invocation and an
// exit status.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/marcelocantos/redirect/internal/audit"
	"github.com/marcelocantos/redirect/internal/config"
	"github.com/marcelocantos/redirect/internal/logging"
	"github.com/marcelocantos/redirect/internal/redirect"
)

const (
	exitFailure = 1 // setup, file-open or launch failure
	exitUsage   = 2 // bad command line
)

// Run executes one invocation described by args (without the program
// name) and returns the status the process should exit with. The caller's
// streams are inherited by the child unless redirected.
func Run(ctx context.Context, args []string, version string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, fs, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "redirect: %v\n\n", err)
		printUsage(stderr, fs)
		return exitUsage
	}
	if opts.Help {
		printUsage(stdout, fs)
		return 0
	}
	if opts.Version {
		fmt.Fprintf(stdout, "redirect %s\n", version)
		return 0
	}

	cfg, err := config.LoadFrom(opts.Config)
	if err != nil {
		fmt.Fprintf(stderr, "redirect: config: %v\n", err)
		return exitFailure
	}
	if opts.Verbose {
		cfg.Log.Level = "debug"
	}
	log := logging.New(cfg.Log, stderr)

	if opts.Audit != "" {
		return RunAudit(stdout, stderr, cfg.Audit.Path, opts.Audit, opts.AuditLines)
	}

	if opts.Command == "" {
		fmt.Fprintln(stderr, "redirect: missing COMMAND")
		fmt.Fprintln(stderr)
		printUsage(stderr, fs)
		return exitUsage
	}

	req := &redirect.Request{
		Command: opts.Command,
		Args:    opts.Args,
		In:      opts.In,
		Out:     opts.Out,
		Err:     opts.Err,
	}
	return runRequest(ctx, req, cfg, log, redirect.Std{Stdin: stdin, Stdout: stdout, Stderr: stderr})
}

func runRequest(ctx context.Context, req *redirect.Request, cfg *config.Config, log zerolog.Logger, std redirect.Std) int {
	var logger *audit.Logger
	if cfg.Audit.Path != "" {
		l, err := audit.NewLogger(cfg.Audit.Path)
		if err != nil {
			// Continue without audit logging.
			log.Warn().Err(err).Str("path", cfg.Audit.Path).Msg("audit log unavailable")
		} else {
			logger = l
		}
	}

	start := time.Now()
	err := req.Resolve()
	if err == nil {
		log.Debug().
			Str("command", req.Command).
			Strs("args", req.Args).
			Str("in", req.In).
			Str("out", req.Out).
			Str("err", req.Err).
			Msg("spawning")
		err = redirect.Execute(ctx, req, std)
	}
	duration := time.Since(start)

	exitCode, signal, errMsg := resolveError(err, std.Stderr)
	log.Debug().
		Int("exit_code", exitCode).
		Str("signal", signal).
		Dur("duration", duration).
		Msg("finished")

	logAudit(logger, log, req, exitCode, signal, errMsg, duration)

	return exitCode
}

// resolveError extracts an exit code from an error. A child's non-zero
// status is propagated silently; the child's own stderr is sufficient.
// Other errors are reported on stderr.
func resolveError(err error, stderr io.Writer) (exitCode int, signal, errMsg string) {
	if err == nil {
		return 0, "", ""
	}
	var exitErr *redirect.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, exitErr.Signal, ""
	}
	fmt.Fprintf(stderr, "redirect: %v\n", err)
	return exitFailure, "", err.Error()
}

func logAudit(logger *audit.Logger, log zerolog.Logger, req *redirect.Request, exitCode int, signal, errMsg string, duration time.Duration) {
	if logger == nil {
		return
	}
	cwd, _ := os.Getwd()
	err := logger.Log(audit.Record{
		Command:  req.Command,
		Args:     req.Args,
		Stdin:    req.In,
		Stdout:   req.Out,
		Stderr:   req.Err,
		ExitCode: exitCode,
		Signal:   signal,
		Error:    errMsg,
		Duration: duration,
		Cwd:      cwd,
	})
	// The command's status wins over audit failures.
	if err != nil {
		log.Warn().Err(err).Str("path", logger.Path()).Msg("audit write failed")
	}
}
