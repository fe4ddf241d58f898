package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fivetwenty-io/flexvm/internal/constants"
	"github.com/fivetwenty-io/flexvm/pkg/flexvm"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

// Entitlement statuses accepted by entitlements update.
const (
	EntitlementStatusActive  = "ACTIVE"
	EntitlementStatusStopped = "STOPPED"
)

// NewEntitlementsCommand creates the entitlements command group.
func NewEntitlementsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entitlements",
		Aliases: []string{"entitlement", "ent"},
		Short:   "Manage entitlements",
	}

	cmd.AddCommand(newEntitlementsListCommand())
	cmd.AddCommand(newEntitlementsCreateVMCommand())
	cmd.AddCommand(newEntitlementsCreateHardwareCommand())
	cmd.AddCommand(newEntitlementsCreateCloudCommand())
	cmd.AddCommand(newEntitlementsUpdateCommand())
	cmd.AddCommand(newEntitlementsPointsCommand())
	cmd.AddCommand(newEntitlementsRegenerateTokenCommand())

	return cmd
}

func entitlementColumns() []column {
	return []column{
		field("Serial Number", "serialNumber"),
		field("Config", "configId"),
		field("Status", "status"),
		field("Token", "token"),
		field("Token Status", "tokenStatus"),
		field("Description", "description"),
		field("Start", "startDate"),
		field("End", "endDate"),
	}
}

func newEntitlementsListCommand() *cobra.Command {
	var (
		request   flexvm.EntitlementListRequest
		accountID int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entitlements",
		Long:  "List entitlements of a configuration (--config-id) or of a program (--account-id and --program).",
		RunE: func(cmd *cobra.Command, args []string) error {
			request.AccountID = optionalInt(cmd, "account-id", accountID)

			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.Entitlements().List(cmd.Context(), &request)
			if err != nil {
				return err
			}

			return writeResponse(cmd.OutOrStdout(), resp, "entitlements", entitlementColumns())
		},
	}

	cmd.Flags().IntVar(&request.ConfigID, "config-id", 0, "configuration id")
	cmd.Flags().IntVar(&accountID, "account-id", 0, "account id")
	cmd.Flags().StringVar(&request.ProgramSerialNumber, "program", "", "program serial number")
	cmd.Flags().StringVar(&request.SerialNumber, "serial", "", "entitlement serial number")
	cmd.Flags().StringVar(&request.Description, "description", "", "filter by description")
	cmd.Flags().StringVar(&request.Status, "status", "", "filter by status")
	cmd.Flags().StringVar(&request.TokenStatus, "token-status", "", "filter by token status")

	return cmd
}

func newEntitlementsCreateVMCommand() *cobra.Command {
	var (
		request     flexvm.EntitlementVMCreateRequest
		skipPending bool
	)

	cmd := &cobra.Command{
		Use:   "create-vm",
		Short: "Create VM entitlements",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("skip-pending") {
				request.SkipPending = &skipPending
			}

			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.Entitlements().CreateVM(cmd.Context(), &request)
			if err != nil {
				return err
			}

			return writeResponse(cmd.OutOrStdout(), resp, "entitlements", entitlementColumns())
		},
	}

	cmd.Flags().IntVar(&request.ConfigID, "config-id", 0, "configuration id")
	cmd.Flags().IntVar(&request.Count, "count", 1, "number of entitlements")
	cmd.Flags().StringVar(&request.Description, "description", "", "entitlement description")
	cmd.Flags().StringVar(&request.EndDate, "end-date", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&request.FolderPath, "folder-path", "", "asset folder")
	cmd.Flags().BoolVar(&skipPending, "skip-pending", false, "activate without waiting for a token")

	_ = cmd.MarkFlagRequired("config-id")

	return cmd
}

func newEntitlementsCreateHardwareCommand() *cobra.Command {
	var request flexvm.EntitlementHardwareCreateRequest

	cmd := &cobra.Command{
		Use:   "create-hardware",
		Short: "Create hardware entitlements",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.Entitlements().CreateHardware(cmd.Context(), &request)
			if err != nil {
				return err
			}

			return writeResponse(cmd.OutOrStdout(), resp, "entitlements", entitlementColumns())
		},
	}

	cmd.Flags().IntVar(&request.ConfigID, "config-id", 0, "configuration id")
	cmd.Flags().StringSliceVar(&request.SerialNumbers, "serial", nil, "device serial numbers")
	cmd.Flags().StringVar(&request.EndDate, "end-date", "", "end date (YYYY-MM-DD)")

	_ = cmd.MarkFlagRequired("config-id")
	_ = cmd.MarkFlagRequired("serial")

	return cmd
}

func newEntitlementsCreateCloudCommand() *cobra.Command {
	var request flexvm.EntitlementCloudCreateRequest

	cmd := &cobra.Command{
		Use:   "create-cloud",
		Short: "Create a cloud entitlement",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.Entitlements().CreateCloud(cmd.Context(), &request)
			if err != nil {
				return err
			}

			return writeResponse(cmd.OutOrStdout(), resp, "entitlements", entitlementColumns())
		},
	}

	cmd.Flags().IntVar(&request.ConfigID, "config-id", 0, "configuration id")
	cmd.Flags().StringVar(&request.EndDate, "end-date", "", "end date (YYYY-MM-DD)")

	_ = cmd.MarkFlagRequired("config-id")

	return cmd
}

// entitlementUpdate describes an entitlements update invocation. Nil
// pointers leave the field unchanged.
type entitlementUpdate struct {
	serialNumber string
	configID     int
	description  *string
	endDate      *string
	status       string
}

// updateResult is the outcome of updateEntitlement.
type updateResult struct {
	response flexvm.Response
	changed  bool
	warning  string
}

func newEntitlementsUpdateCommand() *cobra.Command {
	var (
		configID    int
		description string
		endDate     string
		status      string
	)

	cmd := &cobra.Command{
		Use:   "update SERIAL",
		Short: "Update, stop or reactivate an entitlement",
		Long: `Update an entitlement. The current entitlement is looked up first when
--config-id is given, and nothing is sent if it already matches.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			update := &entitlementUpdate{serialNumber: args[0], configID: configID, status: status}

			if cmd.Flags().Changed("description") {
				update.description = &description
			}

			if cmd.Flags().Changed("end-date") {
				update.endDate = &endDate
			}

			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			result, err := updateEntitlement(cmd.Context(), client.Entitlements(), update)
			if err != nil {
				return err
			}

			if result.warning != "" {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Warning:", result.warning)
			}

			if !result.changed {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "No changes")
			}

			return writeResponse(cmd.OutOrStdout(), result.response, "entitlements", entitlementColumns())
		},
	}

	cmd.Flags().IntVar(&configID, "config-id", 0, "configuration id, required to change description or end date")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&endDate, "end-date", "", "new end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", "", "ACTIVE to reactivate, STOPPED to stop")

	return cmd
}

// updateEntitlement compares the requested fields with the current
// entitlement, changes its status if needed and then sends the update.
// The current entitlement can only be looked up by configuration, so without
// configID every requested change is applied blindly.
func updateEntitlement(ctx context.Context, entitlements flexvm.EntitlementsClient, update *entitlementUpdate) (*updateResult, error) {
	switch update.status {
	case "", EntitlementStatusActive, EntitlementStatusStopped:
	default:
		return nil, fmt.Errorf("%w %q, expected %s or %s",
			constants.ErrInvalidStatus, update.status, EntitlementStatusActive, EntitlementStatusStopped)
	}

	if (update.description != nil || update.endDate != nil) && update.configID == 0 {
		return nil, constants.ErrConfigIDRequired
	}

	result := &updateResult{response: flexvm.Response{}}
	current := "UNKNOWN"

	if update.configID != 0 {
		resp, err := entitlements.List(ctx, &flexvm.EntitlementListRequest{
			SerialNumber: update.serialNumber,
			ConfigID:     update.configID,
		})
		if err != nil {
			return nil, err
		}

		items := resp.Items("entitlements")
		if len(items) == 0 {
			return nil, fmt.Errorf("%w, please check serial number %s", constants.ErrEntitlementNotFound, update.serialNumber)
		}

		result.response = resp
		current, _ = items[0]["status"].(string)

		if !needsUpdate(items[0], update) {
			return result, nil
		}
	}

	if update.status != "" && update.status != current {
		change := entitlements.Reactivate
		if update.status == EntitlementStatusStopped {
			change = entitlements.Stop
		}

		resp, err := change(ctx, update.serialNumber)
		if err != nil {
			if body := errorBody(err); hasErrorCode(body) {
				result.response = body
				result.warning = fmt.Sprintf("the entitlement is already %s, provide --config-id to check its status first", update.status)

				return result, nil
			}

			return nil, err
		}

		result.response = resp
	}

	if update.configID != 0 {
		resp, err := entitlements.Update(ctx, &flexvm.EntitlementUpdateRequest{
			SerialNumber: update.serialNumber,
			ConfigID:     update.configID,
			Description:  update.description,
			EndDate:      update.endDate,
			IgnoreErrors: true,
		})
		if err != nil {
			return nil, err
		}

		result.response = resp
	}

	result.changed = true

	return result, nil
}

func needsUpdate(current map[string]interface{}, update *entitlementUpdate) bool {
	differs := func(key string, want *string) bool {
		if want == nil {
			return false
		}

		have, _ := current[key].(string)

		return have != *want
	}

	var status *string
	if update.status != "" {
		status = &update.status
	}

	return differs("description", update.description) ||
		differs("endDate", update.endDate) ||
		differs("status", status)
}

// errorBody returns the response body carried by a request or API error.
func errorBody(err error) flexvm.Response {
	reqErr := &flexvm.RequestError{}
	if errors.As(err, &reqErr) {
		return reqErr.Body
	}

	apiErr := &flexvm.APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Body
	}

	return nil
}

func hasErrorCode(body flexvm.Response) bool {
	if body == nil {
		return false
	}

	data, err := json.Marshal(body)
	if err != nil {
		return false
	}

	return gjson.GetBytes(data, "error.errorCode").Exists()
}

func newEntitlementsPointsCommand() *cobra.Command {
	var (
		request   flexvm.EntitlementPointsRequest
		accountID int
	)

	cmd := &cobra.Command{
		Use:   "points",
		Short: "Show point usage between two dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			request.AccountID = optionalInt(cmd, "account-id", accountID)

			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.Entitlements().Points(cmd.Context(), &request)
			if err != nil {
				return err
			}

			return writeResponse(cmd.OutOrStdout(), resp, "entitlements", []column{
				field("Serial Number", "serialNumber"),
				field("Points", "points"),
			})
		},
	}

	cmd.Flags().StringVar(&request.StartDate, "start-date", "", "first day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&request.EndDate, "end-date", "", "last day (YYYY-MM-DD)")
	cmd.Flags().IntVar(&request.ConfigID, "config-id", 0, "configuration id")
	cmd.Flags().IntVar(&accountID, "account-id", 0, "account id")
	cmd.Flags().StringVar(&request.ProgramSerialNumber, "program", "", "program serial number")
	cmd.Flags().StringVar(&request.SerialNumber, "serial", "", "entitlement serial number")

	_ = cmd.MarkFlagRequired("start-date")
	_ = cmd.MarkFlagRequired("end-date")

	return cmd
}

func newEntitlementsRegenerateTokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "regenerate-token SERIAL",
		Short: "Issue a new token for a VM entitlement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.Entitlements().RegenerateToken(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return writeResponse(cmd.OutOrStdout(), resp, "entitlements", entitlementColumns())
		},
	}
}
