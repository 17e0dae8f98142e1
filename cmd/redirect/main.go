package main

import (
	"context"
	"os"

	"github.com/marcelocantos/redirect/internal/cli"
)

var version = "dev"

func main() {
	// Deferred closes inside cli.Run complete before the process exits.
	os.Exit(run())
}

func run() int {
	return cli.Run(context.Background(), os.Args[1:], version, os.Stdin, os.Stdout, os.Stderr)
}
