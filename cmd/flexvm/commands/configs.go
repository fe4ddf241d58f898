package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/flexvm/internal/catalog"
	"github.com/fivetwenty-io/flexvm/internal/constants"
	"github.com/fivetwenty-io/flexvm/pkg/flexvm"
	"github.com/spf13/cobra"
)

// Configuration statuses accepted by configs update.
const (
	ConfigStatusActive   = "ACTIVE"
	ConfigStatusDisabled = "DISABLED"
)

// NewConfigsCommand creates the configs command group.
func NewConfigsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "configs",
		Aliases: []string{"config"},
		Short:   "Manage product configurations",
	}

	cmd.AddCommand(newConfigsCreateCommand())
	cmd.AddCommand(newConfigsListCommand())
	cmd.AddCommand(newConfigsUpdateCommand())

	return cmd
}

func configColumns() []column {
	products := catalog.Default()

	return []column{
		field("ID", "id"),
		field("Name", "name"),
		field("Status", "status"),
		field("Program", "programSerialNumber"),
		productColumn(products),
		parametersColumn(products),
	}
}

// optionalInt returns a pointer to value when the flag was set.
func optionalInt(cmd *cobra.Command, name string, value int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}

	return &value
}

func newConfigsCreateCommand() *cobra.Command {
	var (
		program   string
		name      string
		accountID int
		product   productFlags
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a configuration",
		Example: `  flexvm configs create --program ELAVMS0000003536 --name edge \
    --product fortiGateBundle --param cpu=4 --param service=UTP --param fortiGuardServices=FGTAVDB,FGTFAIS`,
		RunE: func(cmd *cobra.Command, args []string) error {
			selection, err := product.selection(catalog.Default())
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.Configs().Create(cmd.Context(), &flexvm.ConfigCreateRequest{
				ProgramSerialNumber: program,
				Name:                name,
				AccountID:           optionalInt(cmd, "account-id", accountID),
				Products:            selection,
				SkipValidation:      product.skipCheck,
			})
			if err != nil {
				return err
			}

			return writeResponse(cmd.OutOrStdout(), resp, "configs", configColumns())
		},
	}

	cmd.Flags().StringVar(&program, "program", "", "program serial number")
	cmd.Flags().StringVar(&name, "name", "", "configuration name")
	cmd.Flags().IntVar(&accountID, "account-id", 0, "account id (for multi-account programs)")
	product.register(cmd)

	_ = cmd.MarkFlagRequired("program")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newConfigsListCommand() *cobra.Command {
	var (
		program   string
		accountID int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the configurations of a program",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.Configs().List(cmd.Context(), &flexvm.ConfigListRequest{
				ProgramSerialNumber: program,
				AccountID:           optionalInt(cmd, "account-id", accountID),
			})
			if err != nil {
				return err
			}

			return writeResponse(cmd.OutOrStdout(), resp, "configs", configColumns())
		},
	}

	cmd.Flags().StringVar(&program, "program", "", "program serial number")
	cmd.Flags().IntVar(&accountID, "account-id", 0, "account id")

	_ = cmd.MarkFlagRequired("program")

	return cmd
}

// configUpdate describes a configs update invocation.
type configUpdate struct {
	id             int
	name           string
	products       flexvm.ProductSelection
	status         string
	skipValidation bool
}

func newConfigsUpdateCommand() *cobra.Command {
	var (
		name    string
		status  string
		product productFlags
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update, enable or disable a configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid configuration id %q: %w", args[0], err)
			}

			update := &configUpdate{id: id, name: name, status: status, skipValidation: product.skipCheck}

			if product.given() {
				if update.products, err = product.selection(catalog.Default()); err != nil {
					return err
				}
			}

			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			resp, err := updateConfig(cmd.Context(), client.Configs(), update)
			if err != nil {
				return err
			}

			return writeResponse(cmd.OutOrStdout(), resp, "configs", configColumns())
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new configuration name")
	cmd.Flags().StringVar(&status, "status", "", "set the status after updating (ACTIVE or DISABLED)")
	product.register(cmd)

	return cmd
}

// updateConfig sends the update when there is something to change, then
// enables or disables the configuration if its status differs.
func updateConfig(ctx context.Context, configs flexvm.ConfigsClient, update *configUpdate) (flexvm.Response, error) {
	switch update.status {
	case "", ConfigStatusActive, ConfigStatusDisabled:
	default:
		return nil, fmt.Errorf("%w %q, expected %s or %s",
			constants.ErrInvalidStatus, update.status, ConfigStatusActive, ConfigStatusDisabled)
	}

	resp := flexvm.Response{}
	current := "UNKNOWN"

	if update.products != nil || update.name != "" {
		var err error

		resp, err = configs.Update(ctx, &flexvm.ConfigUpdateRequest{
			ID:             update.id,
			Name:           update.name,
			Products:       update.products,
			SkipValidation: update.skipValidation,
		})
		if err != nil {
			return resp, err
		}

		if items := resp.Items("configs"); len(items) > 0 {
			current, _ = items[0]["status"].(string)
		}
	}

	if update.status == "" || update.status == current {
		return resp, nil
	}

	if update.status == ConfigStatusActive {
		return configs.Enable(ctx, update.id)
	}

	return configs.Disable(ctx, update.id)
}
