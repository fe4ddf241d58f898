package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/flexvm/internal/constants"
	"github.com/fivetwenty-io/flexvm/internal/http"
	"github.com/fivetwenty-io/flexvm/pkg/flexvm"
)

// GroupsClient implements flexvm.GroupsClient.
type GroupsClient struct {
	httpClient *http.Client
}

// NewGroupsClient creates a new groups client.
func NewGroupsClient(httpClient *http.Client) *GroupsClient {
	return &GroupsClient{
		httpClient: httpClient,
	}
}

// List implements flexvm.GroupsClient.List. Without an account id the
// legacy FlexVM endpoint is queried.
func (c *GroupsClient) List(ctx context.Context, request *flexvm.GroupListRequest) (flexvm.Response, error) {
	path := constants.PathGroupsListLegacy
	payload := map[string]interface{}{}

	if request != nil && request.AccountID != "" {
		path = constants.PathGroupsList
		payload["accountId"] = request.AccountID
	}

	resp, err := post(ctx, c.httpClient, path, payload, false)
	if err != nil {
		return resp, fmt.Errorf("listing groups: %w", err)
	}

	return resp, nil
}

// NextToken implements flexvm.GroupsClient.NextToken.
func (c *GroupsClient) NextToken(ctx context.Context, request *flexvm.GroupNextTokenRequest) (flexvm.Response, error) {
	payload, err := toPayload(request)
	if err != nil {
		return nil, err
	}

	resp, err := post(ctx, c.httpClient, constants.PathGroupsNextToken, payload, false)
	if err != nil {
		return resp, fmt.Errorf("getting next token: %w", err)
	}

	return resp, nil
}
