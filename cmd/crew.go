package cmd

import (
	"fmt"

	"github.com/bnema/salvage-tracker/internal/domain"
	"github.com/spf13/cobra"
)

func newCrewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crew",
		Short: "Inspect the crew roster rules",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the NPC names counted as salvage crew",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range domain.CrewNames() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err
				}
			}
			return nil
		},
	})

	return cmd
}
