//go:build !unix

package redirect

import "os/exec"

func exitStatus(err *exec.ExitError) (int, string) {
	return err.ExitCode(), ""
}
