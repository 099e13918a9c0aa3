package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/frontgen/internal/rpc"
)

func newAgentsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "agents",
		Short: "List the framework agents and their operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			agents, err := a.spawnAll()
			if err != nil {
				return err
			}
			card := rpc.NewServer(agents, rpc.WithVersion(version)).Card()
			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), card)
			}
			out := cmd.OutOrStdout()
			for i, e := range card.Agents {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s %s\n", bold(e.Name), gray("("+string(e.Specialization)+")"))
				fmt.Fprintf(out, "  capabilities: %s\n", strings.Join(e.Capabilities, ", "))
				for _, op := range e.Operations {
					fmt.Fprintf(out, "  %s %s\n", cyan("-"), op)
				}
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the frontgen version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}
