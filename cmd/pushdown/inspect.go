package main

import (
	"github.com/aretw0/pushdown/internal/cli"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <pda_filename>",
		Short: "Check a definition for errors",
		Long: `Loads the definition and reports every format or consistency error.
A valid definition is also checked for unreachable states and unused symbols.`,
		Args: requireArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Validate(args[0], cmd.OutOrStdout())
		},
	}
}

func newGraphCmd() *cobra.Command {
	graphCmd := &cobra.Command{
		Use:   "graph <pda_filename>",
		Short: "Export the state diagram",
		Long: `Outputs a Mermaid (stateDiagram-v2) or Graphviz DOT diagram of the automaton.
With --input the states on the accepting path of that input are highlighted.`,
		Args: requireArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			input, _ := cmd.Flags().GetString("input")
			timeout, hasTimeout, err := timeoutFlag(cmd)
			if err != nil {
				return err
			}
			debug, _ := cmd.Flags().GetBool("debug")

			return cli.Graph(cli.GraphOptions{
				Path:         args[0],
				Format:       format,
				Input:        input,
				HasInput:     cmd.Flags().Changed("input"),
				StepLimit:    timeout,
				HasStepLimit: hasTimeout,
				Debug:        debug,
				Stdout:       cmd.OutOrStdout(),
				Stderr:       cmd.ErrOrStderr(),
			})
		},
	}
	graphCmd.Flags().StringP("format", "f", "mermaid", "Diagram format: 'mermaid' or 'dot'")
	graphCmd.Flags().String("input", "", "Highlight the accepting path of this input")
	addTimeoutFlag(graphCmd)
	return graphCmd
}

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <pda_filename>",
		Short: "Summarize a definition",
		Long:  `Prints the states, alphabets and transition table of the automaton as rendered markdown.`,
		Args:  requireArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Describe(args[0], cmd.OutOrStdout(), useColor(cmd))
		},
	}
}
