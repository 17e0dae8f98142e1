//go:build unix

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

// runCLI invokes Run with buffered streams.
func runCLI(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errb bytes.Buffer
	code = Run(context.Background(), args, "test", strings.NewReader(stdin), &out, &errb)
	return code, out.String(), errb.String()
}

func TestRunPropagatesExitStatus(t *testing.T) {
	dir := t.TempDir()
	for _, want := range []int{0, 7} {
		digit := string(rune('0' + want))
		script := writeScript(t, dir, "exit"+digit, "exit "+digit)
		code, _, stderr := runCLI(t, "", script)
		if code != want {
			t.Errorf("expected %d, got %d", want, code)
		}
		if stderr != "" {
			t.Errorf("child exit should be silent, got %q", stderr)
		}
	}
}

func TestRunForwardsFlagLikeArgs(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "args", `for a in "$@"; do printf '[%s]' "$a"; done`)

	code, stdout, _ := runCLI(t, "", script, "--out", "not-a-flag", "-v", "--", "--help")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if want := "[--out][not-a-flag][-v][--][--help]"; stdout != want {
		t.Errorf("got %q, want %q", stdout, want)
	}
	if _, err := os.Stat("not-a-flag"); !os.IsNotExist(err) {
		t.Error("--out after COMMAND must not be consumed as a redirection")
	}
}

func TestRunRedirectsAllStreams(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")
	errPath := filepath.Join(dir, "err.txt")
	if err := os.WriteFile(in, []byte("payload\n"), 0644); err != nil {
		t.Fatal(err)
	}
	script := writeScript(t, dir, "echo", `cat; echo diag >&2; exit 4`)

	code, stdout, stderr := runCLI(t, "ignored\n", "--in", in, "--out="+out, "--err", errPath, script)
	if code != 4 {
		t.Errorf("expected exit 4, got %d", code)
	}
	if stdout != "" || stderr != "" {
		t.Errorf("caller streams should be untouched, got %q / %q", stdout, stderr)
	}
	got, _ := os.ReadFile(out)
	if string(got) != "payload\n" {
		t.Errorf("out: got %q", got)
	}
	got, _ = os.ReadFile(errPath)
	if string(got) != "diag\n" {
		t.Errorf("err: got %q", got)
	}
}

func TestRunInheritsStreamsWithoutFlags(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "echo", `cat; echo to-err >&2`)

	code, stdout, stderr := runCLI(t, "from caller\n", script)
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if stdout != "from caller\n" {
		t.Errorf("stdout: got %q", stdout)
	}
	if stderr != "to-err\n" {
		t.Errorf("stderr: got %q", stderr)
	}
}

func TestRunRelativeCommand(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "self", `printf '%s' "$0"`)
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PWD", dir)
	t.Cleanup(func() { _ = os.Chdir(oldwd) })

	code, stdout, _ := runCLI(t, "", "./self")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	wd, _ := os.Getwd()
	if want := filepath.Join(wd, "self"); stdout != want {
		t.Errorf("got %q, want %q", stdout, want)
	}
}

func TestRunUsageErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"no command", nil, "missing COMMAND"},
		{"only redirections", []string{"--out", "x"}, "missing COMMAND"},
		{"unknown flag", []string{"--bogus", "/bin/true"}, "unknown flag"},
		{"flag without value", []string{"--in"}, "needs an argument"},
		{"bad audit op", []string{"--audit", "rewrite"}, "unknown operation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, "", tt.args...)
			if code != exitUsage {
				t.Errorf("expected exit %d, got %d", exitUsage, code)
			}
			if !strings.Contains(stderr, tt.wantMsg) {
				t.Errorf("expected %q in stderr, got %q", tt.wantMsg, stderr)
			}
			if !strings.Contains(stderr, "usage:") {
				t.Errorf("expected usage on stderr, got %q", stderr)
			}
			if stdout != "" {
				t.Errorf("stdout should be empty, got %q", stdout)
			}
		})
	}
}

func TestRunHelpAndVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "--help")
	if code != 0 || !strings.Contains(stdout, "usage:") || !strings.Contains(stdout, "--out FILE") {
		t.Errorf("help: code %d, output %q", code, stdout)
	}

	code, stdout, _ = runCLI(t, "", "--version")
	if code != 0 || stdout != "redirect test\n" {
		t.Errorf("version: code %d, output %q", code, stdout)
	}
}

func TestRunSetupFailures(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "ok", "exit 0")

	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"missing command", []string{filepath.Join(dir, "absent")}, "launch"},
		{"missing input", []string{"--in", filepath.Join(dir, "nope"), script}, "open input"},
		{"unwritable output", []string{"--out", filepath.Join(dir, "no", "dir"), script}, "open output"},
		{"missing config", []string{"--config", filepath.Join(dir, "cfg.yaml"), script}, "config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, "", tt.args...)
			if code != exitFailure {
				t.Errorf("expected exit %d, got %d", exitFailure, code)
			}
			if !strings.HasPrefix(stderr, "redirect: ") || !strings.Contains(stderr, tt.wantMsg) {
				t.Errorf("unexpected diagnostic: %q", stderr)
			}
		})
	}
}

func TestRunVerboseLogsToStderr(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")
	script := writeScript(t, dir, "hi", "echo hi")

	code, stdout, stderr := runCLI(t, "", "-v", "--out", out, script)
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if stdout != "" {
		t.Errorf("logs must not reach stdout: %q", stdout)
	}
	if !strings.Contains(stderr, "spawning") || !strings.Contains(stderr, "finished") {
		t.Errorf("expected debug logs, got %q", stderr)
	}
	got, _ := os.ReadFile(out)
	if string(got) != "hi\n" {
		t.Errorf("out: got %q", got)
	}
}

func TestRunAuditRoundTrip(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "logs", "audit.jsonl")
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("audit:\n  path: "+logPath+"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	script := writeScript(t, dir, "fail", "exit 5")

	if code, _, _ := runCLI(t, "", "--config", cfgPath, script, "a", "b"); code != 5 {
		t.Fatalf("expected exit 5, got %d", code)
	}
	if code, _, _ := runCLI(t, "", "--config", cfgPath, filepath.Join(dir, "absent")); code != exitFailure {
		t.Fatalf("expected exit %d, got %d", exitFailure, code)
	}

	code, stdout, _ := runCLI(t, "", "--config", cfgPath, "--audit", "verify")
	if code != 0 || !strings.Contains(stdout, "verified") {
		t.Fatalf("verify: code %d, output %q", code, stdout)
	}

	code, stdout, _ = runCLI(t, "", "--config", cfgPath, "--audit", "tail", "--audit-lines", "1")
	if code != 0 {
		t.Fatalf("tail: code %d", code)
	}
	if strings.Contains(stdout, `"exit_code": 5`) {
		t.Errorf("tail 1 should only show the newest entry: %q", stdout)
	}
	if !strings.Contains(stdout, "absent") || !strings.Contains(stdout, `"error"`) {
		t.Errorf("expected launch failure entry, got %q", stdout)
	}
}

func TestRunAuditWithoutPath(t *testing.T) {
	code, _, stderr := runCLI(t, "", "--audit", "verify")
	if code != exitUsage || !strings.Contains(stderr, "no audit.path") {
		t.Errorf("code %d, stderr %q", code, stderr)
	}
}
