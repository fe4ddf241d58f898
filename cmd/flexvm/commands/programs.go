package commands

import (
	"github.com/spf13/cobra"
)

// NewProgramsCommand creates the programs command group.
func NewProgramsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "programs",
		Aliases: []string{"program"},
		Short:   "Inspect FortiFlex programs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List programs",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.Programs().List(cmd.Context())
			if err != nil {
				return err
			}

			return writeResponse(cmd.OutOrStdout(), resp, "programs", []column{
				field("Serial Number", "serialNumber"),
				field("Account", "accountId"),
				field("Start", "startDate"),
				field("End", "endDate"),
				field("Support Coverage", "hasSupportCoverage"),
			})
		},
	})

	return cmd
}
