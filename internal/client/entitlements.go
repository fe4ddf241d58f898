package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/flexvm/internal/constants"
	"github.com/fivetwenty-io/flexvm/internal/http"
	"github.com/fivetwenty-io/flexvm/pkg/flexvm"
)

// EntitlementsClient implements flexvm.EntitlementsClient.
type EntitlementsClient struct {
	httpClient *http.Client
}

// NewEntitlementsClient creates a new entitlements client.
func NewEntitlementsClient(httpClient *http.Client) *EntitlementsClient {
	return &EntitlementsClient{
		httpClient: httpClient,
	}
}

// CreateVM implements flexvm.EntitlementsClient.CreateVM. A zero count
// returns an empty list without calling the API.
func (c *EntitlementsClient) CreateVM(ctx context.Context, request *flexvm.EntitlementVMCreateRequest) (flexvm.Response, error) {
	if request.Count == 0 {
		return flexvm.Response{"entitlements": []interface{}{}}, nil
	}

	return c.send(ctx, constants.PathEntitlementsVMCreate, request, "creating VM entitlements")
}

// CreateHardware implements flexvm.EntitlementsClient.CreateHardware.
func (c *EntitlementsClient) CreateHardware(ctx context.Context, request *flexvm.EntitlementHardwareCreateRequest) (flexvm.Response, error) {
	return c.send(ctx, constants.PathEntitlementsHardwareCreate, request, "creating hardware entitlements")
}

// CreateCloud implements flexvm.EntitlementsClient.CreateCloud.
func (c *EntitlementsClient) CreateCloud(ctx context.Context, request *flexvm.EntitlementCloudCreateRequest) (flexvm.Response, error) {
	return c.send(ctx, constants.PathEntitlementsCloudCreate, request, "creating cloud entitlement")
}

// List implements flexvm.EntitlementsClient.List.
func (c *EntitlementsClient) List(ctx context.Context, request *flexvm.EntitlementListRequest) (flexvm.Response, error) {
	if request.ConfigID == 0 && (request.AccountID == nil || request.ProgramSerialNumber == "") {
		return nil, flexvm.ErrMissingFilter
	}

	return c.send(ctx, constants.PathEntitlementsList, request, "listing entitlements")
}

// Update implements flexvm.EntitlementsClient.Update.
func (c *EntitlementsClient) Update(ctx context.Context, request *flexvm.EntitlementUpdateRequest) (flexvm.Response, error) {
	payload, err := toPayload(request)
	if err != nil {
		return nil, err
	}

	resp, err := post(ctx, c.httpClient, constants.PathEntitlementsUpdate, payload, request.IgnoreErrors)
	if err != nil {
		return resp, fmt.Errorf("updating entitlement: %w", err)
	}

	return resp, nil
}

// Stop implements flexvm.EntitlementsClient.Stop.
func (c *EntitlementsClient) Stop(ctx context.Context, serialNumber string) (flexvm.Response, error) {
	return c.sendSerial(ctx, constants.PathEntitlementsStop, serialNumber, "stopping entitlement")
}

// Reactivate implements flexvm.EntitlementsClient.Reactivate.
func (c *EntitlementsClient) Reactivate(ctx context.Context, serialNumber string) (flexvm.Response, error) {
	return c.sendSerial(ctx, constants.PathEntitlementsReactivate, serialNumber, "reactivating entitlement")
}

// RegenerateToken implements flexvm.EntitlementsClient.RegenerateToken.
func (c *EntitlementsClient) RegenerateToken(ctx context.Context, serialNumber string) (flexvm.Response, error) {
	return c.sendSerial(ctx, constants.PathEntitlementsToken, serialNumber, "regenerating token")
}

// Points implements flexvm.EntitlementsClient.Points.
func (c *EntitlementsClient) Points(ctx context.Context, request *flexvm.EntitlementPointsRequest) (flexvm.Response, error) {
	if request.StartDate == "" || request.EndDate == "" {
		return nil, flexvm.ErrMissingDateRange
	}

	if request.ConfigID == 0 && (request.AccountID == nil || request.ProgramSerialNumber == "") {
		return nil, flexvm.ErrMissingFilter
	}

	return c.send(ctx, constants.PathEntitlementsPoints, request, "getting point usage")
}

func (c *EntitlementsClient) sendSerial(ctx context.Context, path, serialNumber, action string) (flexvm.Response, error) {
	resp, err := post(ctx, c.httpClient, path, map[string]interface{}{"serialNumber": serialNumber}, false)
	if err != nil {
		return resp, fmt.Errorf("%s: %w", action, err)
	}

	return resp, nil
}

func (c *EntitlementsClient) send(ctx context.Context, path string, request interface{}, action string) (flexvm.Response, error) {
	payload, err := toPayload(request)
	if err != nil {
		return nil, err
	}

	resp, err := post(ctx, c.httpClient, path, payload, false)
	if err != nil {
		return resp, fmt.Errorf("%s: %w", action, err)
	}

	return resp, nil
}
