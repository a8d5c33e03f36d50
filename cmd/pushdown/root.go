package main

import (
	"errors"

	"github.com/aretw0/pushdown/internal/cli"
	"github.com/spf13/cobra"
)

var errNotEnoughArgs = errors.New("Not enough arguments.")

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pushdown [OPTIONS] <pda_filename> <input_string>",
		Short: "Pushdown is a nondeterministic pushdown automaton simulator",
		Long: `Pushdown reads an automaton definition and decides whether it accepts an input string.
Every nondeterministic choice is explored breadth-first, so an accepting branch is found
whenever one exists, even when other branches loop forever.

Invoked without a subcommand it behaves like 'pushdown run'.`,
		Args:          requireArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Log debug information to stderr")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err}
	})

	addRunFlags(rootCmd)
	rootCmd.RunE = runE

	rootCmd.AddCommand(
		newRunCmd(),
		newValidateCmd(),
		newGraphCmd(),
		newDescribeCmd(),
		newServeCmd(),
		newMCPCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// requireArgs reports missing positional arguments the classic way.
func requireArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return &usageError{errNotEnoughArgs}
		}
		if len(args) > n {
			return &usageError{errors.New("Too many arguments.")}
		}
		return nil
	}
}

// useColor reports whether cmd may write ANSI colors to its output.
func useColor(cmd *cobra.Command) bool {
	noColor, _ := cmd.Flags().GetBool("no-color")
	return !noColor && cli.IsTerminal(cmd.OutOrStdout())
}
