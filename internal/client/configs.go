package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/flexvm/internal/constants"
	"github.com/fivetwenty-io/flexvm/internal/http"
	"github.com/fivetwenty-io/flexvm/internal/translate"
	"github.com/fivetwenty-io/flexvm/pkg/flexvm"
)

// ConfigsClient implements flexvm.ConfigsClient.
type ConfigsClient struct {
	httpClient *http.Client
	translator *translate.Translator
}

// NewConfigsClient creates a new configurations client.
func NewConfigsClient(httpClient *http.Client, translator *translate.Translator) *ConfigsClient {
	return &ConfigsClient{
		httpClient: httpClient,
		translator: translator,
	}
}

// Create implements flexvm.ConfigsClient.Create.
func (c *ConfigsClient) Create(ctx context.Context, request *flexvm.ConfigCreateRequest) (flexvm.Response, error) {
	wire, err := c.translator.Translate(request.Products, !request.SkipValidation)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"programSerialNumber": request.ProgramSerialNumber,
		"name":                request.Name,
		"productTypeId":       wire.ProductTypeID,
		"parameters":          wire.Parameters,
	}

	if request.AccountID != nil {
		payload["accountId"] = *request.AccountID
	}

	resp, err := post(ctx, c.httpClient, constants.PathConfigsCreate, payload, false)
	if err != nil {
		return resp, fmt.Errorf("creating configuration: %w", err)
	}

	return c.translateConfigs(resp)
}

// List implements flexvm.ConfigsClient.List.
func (c *ConfigsClient) List(ctx context.Context, request *flexvm.ConfigListRequest) (flexvm.Response, error) {
	payload, err := toPayload(request)
	if err != nil {
		return nil, err
	}

	resp, err := post(ctx, c.httpClient, constants.PathConfigsList, payload, false)
	if err != nil {
		return resp, fmt.Errorf("listing configurations: %w", err)
	}

	return c.translateConfigs(resp)
}

// Update implements flexvm.ConfigsClient.Update.
func (c *ConfigsClient) Update(ctx context.Context, request *flexvm.ConfigUpdateRequest) (flexvm.Response, error) {
	payload := map[string]interface{}{"id": request.ID}

	if request.Name != "" {
		payload["name"] = request.Name
	}

	if request.Products != nil {
		wire, err := c.translator.Translate(request.Products, !request.SkipValidation)
		if err != nil {
			return nil, err
		}

		payload["parameters"] = wire.Parameters
	}

	resp, err := post(ctx, c.httpClient, constants.PathConfigsUpdate, payload, false)
	if err != nil {
		return resp, fmt.Errorf("updating configuration: %w", err)
	}

	return c.translateConfigs(resp)
}

// Enable implements flexvm.ConfigsClient.Enable.
func (c *ConfigsClient) Enable(ctx context.Context, id int) (flexvm.Response, error) {
	resp, err := post(ctx, c.httpClient, constants.PathConfigsEnable, map[string]interface{}{"id": id}, false)
	if err != nil {
		return resp, fmt.Errorf("enabling configuration: %w", err)
	}

	return c.translateConfigs(resp)
}

// Disable implements flexvm.ConfigsClient.Disable.
func (c *ConfigsClient) Disable(ctx context.Context, id int) (flexvm.Response, error) {
	resp, err := post(ctx, c.httpClient, constants.PathConfigsDisable, map[string]interface{}{"id": id}, false)
	if err != nil {
		return resp, fmt.Errorf("disabling configuration: %w", err)
	}

	return c.translateConfigs(resp)
}

// translateConfigs converts "configs" to the human schema. It holds a single
// object for create, update, enable and disable, and a list otherwise.
func (c *ConfigsClient) translateConfigs(resp flexvm.Response) (flexvm.Response, error) {
	switch configs := resp["configs"].(type) {
	case map[string]interface{}:
		human, err := c.translator.FromWire(configs)
		if err != nil {
			return resp, fmt.Errorf("parsing configuration: %w", err)
		}

		resp["configs"] = human
	case []interface{}:
		out := make([]interface{}, 0, len(configs))

		for _, item := range configs {
			config, ok := item.(map[string]interface{})
			if !ok {
				out = append(out, item)

				continue
			}

			human, err := c.translator.FromWire(config)
			if err != nil {
				return resp, fmt.Errorf("parsing configuration: %w", err)
			}

			out = append(out, human)
		}

		resp["configs"] = out
	}

	return resp, nil
}
