package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/pushdown"
	"github.com/aretw0/pushdown/internal/cli"
	"github.com/aretw0/pushdown/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of pushdown",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if cli.IsTerminal(cmd.OutOrStdout()) {
				tui.PrintBanner(cmd.OutOrStdout(), pushdown.Version, useColor(cmd))
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pushdown version %s\n", strings.TrimSpace(pushdown.Version))
		},
	}
}
