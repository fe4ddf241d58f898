// Package client implements the FortiFlex resource clients on top of the
// authenticated HTTP layer.
package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/flexvm/internal/constants"
	"github.com/fivetwenty-io/flexvm/internal/http"
	"github.com/fivetwenty-io/flexvm/internal/translate"
	"github.com/fivetwenty-io/flexvm/pkg/flexvm"
)

// Client groups the resource clients.
type Client struct {
	httpClient *http.Client
	translator *translate.Translator

	configs      *ConfigsClient
	entitlements *EntitlementsClient
	groups       *GroupsClient
	programs     *ProgramsClient
}

// New creates the resource clients. A nil translator selects the built-in
// catalog.
func New(httpClient *http.Client, translator *translate.Translator) *Client {
	if translator == nil {
		translator = translate.New(nil)
	}

	client := &Client{
		httpClient: httpClient,
		translator: translator,
	}

	client.initializeResourceClients()

	return client
}

func (c *Client) initializeResourceClients() {
	c.configs = NewConfigsClient(c.httpClient, c.translator)
	c.entitlements = NewEntitlementsClient(c.httpClient)
	c.groups = NewGroupsClient(c.httpClient)
	c.programs = NewProgramsClient(c.httpClient)
}

// Configs implements flexvm.Client.Configs.
func (c *Client) Configs() flexvm.ConfigsClient {
	return c.configs
}

// Entitlements implements flexvm.Client.Entitlements.
func (c *Client) Entitlements() flexvm.EntitlementsClient {
	return c.entitlements
}

// Groups implements flexvm.Client.Groups.
func (c *Client) Groups() flexvm.GroupsClient {
	return c.groups
}

// Programs implements flexvm.Client.Programs.
func (c *Client) Programs() flexvm.ProgramsClient {
	return c.programs
}

// post sends payload and returns the decoded body. Unless ignoreErrors is
// set, a non-zero application status becomes an *flexvm.APIError.
func post(ctx context.Context, httpClient *http.Client, path string, payload map[string]interface{}, ignoreErrors bool) (flexvm.Response, error) {
	resp, err := httpClient.Do(ctx, &http.Request{
		Method:       "POST",
		Path:         path,
		Payload:      payload,
		IgnoreErrors: ignoreErrors,
	})
	if err != nil {
		if resp != nil {
			return resp.Data, err
		}

		return nil, err
	}

	if resp.Data == nil {
		return nil, fmt.Errorf("%w from %s (status code %d)", constants.ErrEmptyResponse, path, resp.StatusCode)
	}

	renameVMs(resp.Data)

	if !ignoreErrors && resp.Data.Status() != 0 {
		return resp.Data, &flexvm.APIError{
			Status:  resp.Data.Status(),
			Message: resp.Data.Message(),
			Body:    resp.Data,
		}
	}

	return resp.Data, nil
}

// renameVMs moves the "vms" key some endpoints still return to
// "entitlements".
func renameVMs(data flexvm.Response) {
	vms, ok := data["vms"]
	if !ok {
		return
	}

	data["entitlements"] = vms
	delete(data, "vms")
}

// toPayload converts a tagged request struct into a JSON object.
func toPayload(request interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	var payload map[string]interface{}

	err = json.Unmarshal(data, &payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	return payload, nil
}
