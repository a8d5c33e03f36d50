package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/pushdown/internal/cli"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// usageError marks failures that should be followed by the usage text.
type usageError struct {
	error
}

// execute runs the command tree and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteC()
	if err == nil {
		return cli.ExitOK
	}

	fmt.Fprintln(stderr, err)
	var usage *usageError
	if errors.As(err, &usage) {
		fmt.Fprint(stderr, cmd.UsageString())
	}
	return cli.ExitCode(err)
}
