package cli

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

func printUsage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "redirect — run a command with its standard streams redirected to files")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  redirect [--in FILE] [--out FILE] [--err FILE] COMMAND [ARG ...]")
	fmt.Fprintln(w, "  redirect --audit verify|tail [--audit-lines N]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "COMMAND is resolved to an absolute path, not looked up in PATH.")
	fmt.Fprintln(w, "Every token after COMMAND is passed to it unchanged.")
	fmt.Fprintln(w, "The exit status is the command's own.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "flags:")
	fmt.Fprint(w, fs.FlagUsages())
}
