package commands

import (
	"github.com/fivetwenty-io/flexvm/pkg/flexvm"
	"github.com/spf13/cobra"
)

// NewGroupsCommand creates the groups command group.
func NewGroupsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "groups",
		Aliases: []string{"group", "folders"},
		Short:   "Inspect asset folders",
	}

	cmd.AddCommand(newGroupsListCommand())
	cmd.AddCommand(newGroupsNextTokenCommand())

	return cmd
}

func newGroupsListCommand() *cobra.Command {
	var request flexvm.GroupListRequest

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List asset folders and their token counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.Groups().List(cmd.Context(), &request)
			if err != nil {
				return err
			}

			return writeResponse(cmd.OutOrStdout(), resp, "groups", []column{
				field("Folder", "folderPath"),
				field("Available Tokens", "availableTokens"),
				field("Used Tokens", "usedTokens"),
			})
		},
	}

	cmd.Flags().StringVar(&request.AccountID, "account-id", "", "account id, omit to use the FlexVM v1 endpoint")

	return cmd
}

func newGroupsNextTokenCommand() *cobra.Command {
	var request flexvm.GroupNextTokenRequest

	cmd := &cobra.Command{
		Use:   "next-token",
		Short: "Show the next unused token of a folder or configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.Groups().NextToken(cmd.Context(), &request)
			if err != nil {
				return err
			}

			return writeResponse(cmd.OutOrStdout(), resp, "entitlements", entitlementColumns())
		},
	}

	cmd.Flags().StringVar(&request.AccountID, "account-id", "", "account id")
	cmd.Flags().IntVar(&request.ConfigID, "config-id", 0, "configuration id")
	cmd.Flags().StringVar(&request.FolderPath, "folder-path", "", "asset folder")
	cmd.Flags().StringSliceVar(&request.Status, "status", nil, "entitlement statuses to consider")

	return cmd
}
