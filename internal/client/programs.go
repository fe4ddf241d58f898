package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/flexvm/internal/constants"
	"github.com/fivetwenty-io/flexvm/internal/http"
	"github.com/fivetwenty-io/flexvm/pkg/flexvm"
)

// ProgramsClient implements flexvm.ProgramsClient.
type ProgramsClient struct {
	httpClient *http.Client
}

// NewProgramsClient creates a new programs client.
func NewProgramsClient(httpClient *http.Client) *ProgramsClient {
	return &ProgramsClient{
		httpClient: httpClient,
	}
}

// List implements flexvm.ProgramsClient.List.
func (c *ProgramsClient) List(ctx context.Context) (flexvm.Response, error) {
	resp, err := post(ctx, c.httpClient, constants.PathProgramsList, map[string]interface{}{}, false)
	if err != nil {
		return resp, fmt.Errorf("listing programs: %w", err)
	}

	return resp, nil
}
