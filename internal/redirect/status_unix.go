//go:build unix

package redirect

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// exitStatus maps a finished child to the status this process exits
// with. A child killed by signal N yields 128+N, as shells report it.
func exitStatus(err *exec.ExitError) (int, string) {
	ws, ok := err.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return err.ExitCode(), ""
	}
	sig := ws.Signal()
	name := unix.SignalName(sig)
	if name == "" {
		name = sig.String()
	}
	return 128 + int(sig), name
}
