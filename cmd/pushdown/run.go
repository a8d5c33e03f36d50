package main

import (
	"errors"

	"github.com/aretw0/pushdown/internal/cli"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run <pda_filename> <input_string>",
		Short: "Decide whether the automaton accepts an input",
		Long: `Loads the automaton and prints true if it accepts the input, false otherwise.
With --timeout the search gives up (exit code 2) after examining N configurations.`,
		Args: requireArgs(2),
		RunE: runE,
	}
	addRunFlags(runCmd)
	return runCmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("show-all", false, "print all transitions on all branches")
	cmd.Flags().Bool("show-accept-path", false, "print all transitions on the accepting path")
	addTimeoutFlag(cmd)
}

func runE(cmd *cobra.Command, args []string) error {
	showAll, _ := cmd.Flags().GetBool("show-all")
	showPath, _ := cmd.Flags().GetBool("show-accept-path")
	timeout, hasTimeout, err := timeoutFlag(cmd)
	if err != nil {
		return err
	}
	debug, _ := cmd.Flags().GetBool("debug")

	return cli.Run(cli.RunOptions{
		Path:           args[0],
		Input:          args[1],
		StepLimit:      timeout,
		HasStepLimit:   hasTimeout,
		ShowAll:        showAll,
		ShowAcceptPath: showPath,
		Debug:          debug,
		Color:          useColor(cmd),
		Stdout:         cmd.OutOrStdout(),
		Stderr:         cmd.ErrOrStderr(),
	})
}

func addTimeoutFlag(cmd *cobra.Command) {
	cmd.Flags().Int("timeout", 0, "give up if no accept state found after N transitions (unset = never)")
}

// timeoutFlag returns the --timeout value and whether it was given.
func timeoutFlag(cmd *cobra.Command) (int, bool, error) {
	n, err := cmd.Flags().GetInt("timeout")
	if err != nil {
		return 0, false, err
	}
	if n < 0 {
		return 0, false, &usageError{errors.New("--timeout must not be negative")}
	}
	return n, cmd.Flags().Changed("timeout"), nil
}
