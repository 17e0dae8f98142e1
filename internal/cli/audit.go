package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/marcelocantos/redirect/internal/audit"
)

// RunAudit handles --audit verify|tail against the log at logPath.
func RunAudit(w, errw io.Writer, logPath, op string, n int) int {
	if logPath == "" {
		fmt.Fprintln(errw, "redirect: --audit: no audit.path configured")
		return exitUsage
	}

	switch op {
	case "verify":
		if err := audit.Verify(logPath); err != nil {
			fmt.Fprintf(w, "audit verification FAILED: %v\n", err)
			return exitFailure
		}
		fmt.Fprintln(w, "audit log integrity verified")
		return 0

	case "tail":
		entries, err := audit.Tail(logPath, n)
		if err != nil {
			fmt.Fprintf(errw, "redirect: audit: %v\n", err)
			return exitFailure
		}
		if len(entries) == 0 {
			fmt.Fprintln(w, "no audit entries")
			return 0
		}
		for _, e := range entries {
			data, _ := json.MarshalIndent(e, "", "  ")
			fmt.Fprintf(w, "%s\n", data)
		}
		return 0

	default:
		fmt.Fprintf(errw, "redirect: --audit: unknown operation %q\n", op)
		return exitUsage
	}
}
