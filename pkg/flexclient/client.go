package flexclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/flexvm/internal/auth"
	"github.com/fivetwenty-io/flexvm/internal/catalog"
	"github.com/fivetwenty-io/flexvm/internal/client"
	"github.com/fivetwenty-io/flexvm/internal/constants"
	flexhttp "github.com/fivetwenty-io/flexvm/internal/http"
	"github.com/fivetwenty-io/flexvm/internal/session"
	"github.com/fivetwenty-io/flexvm/internal/tracelog"
	"github.com/fivetwenty-io/flexvm/internal/translate"
	"github.com/fivetwenty-io/flexvm/pkg/flexvm"
	"github.com/go-playground/validator/v10"
)

// Client implements flexvm.Client.
type Client struct {
	*client.Client

	httpClient   *flexhttp.Client
	tokenManager *auth.PasswordTokenManager
	translator   *translate.Translator
	store        session.Store
}

var _ flexvm.Client = (*Client)(nil)

// New creates a FortiFlex API client. No network call is made until the
// first request or an explicit Login.
func New(_ context.Context, config *flexvm.Config) (*Client, error) {
	if config == nil {
		return nil, flexvm.ErrConfigRequired
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("%w: %w", flexvm.ErrInvalidConfig, err)
	}

	cfg := withDefaults(*config)

	store, err := session.New(cfg.SessionBackend, cfg.SessionPath, cfg.NATSURL)
	if err != nil {
		return nil, fmt.Errorf("creating session store: %w", err)
	}

	trace := tracelog.New(cfg.LogPath)
	transport := &http.Client{}

	tokenManager := auth.NewPasswordTokenManager(&auth.Config{
		AuthURL:        cfg.AuthURL,
		Username:       cfg.Username,
		Password:       cfg.Password,
		PersistSession: cfg.PersistSession,
		Store:          store,
		HTTPClient:     transport,
		Trace:          trace,
		Logger:         cfg.Logger,
		UserAgent:      cfg.UserAgent,
	})

	translator := translate.New(nil)

	httpClient := flexhttp.NewClient(cfg.APIURL, tokenManager,
		flexhttp.WithHTTPClient(transport),
		flexhttp.WithTimeout(cfg.HTTPTimeout),
		flexhttp.WithLogger(cfg.Logger),
		flexhttp.WithRetryLimit(cfg.RetryLimit),
		flexhttp.WithTraceLog(trace),
		flexhttp.WithMessageRewriter(translator.RewriteParameterIDs),
		flexhttp.WithUserAgent(cfg.UserAgent),
	)

	return &Client{
		Client:       client.New(httpClient, translator),
		httpClient:   httpClient,
		tokenManager: tokenManager,
		translator:   translator,
		store:        store,
	}, nil
}

func withDefaults(cfg flexvm.Config) flexvm.Config {
	if cfg.AuthURL == "" {
		cfg.AuthURL = constants.DefaultAuthURL
	}

	if cfg.APIURL == "" {
		cfg.APIURL = constants.DefaultAPIURL
	}

	switch {
	case cfg.RetryLimit == 0:
		cfg.RetryLimit = constants.DefaultRetryLimit
	case cfg.RetryLimit < 0:
		cfg.RetryLimit = 0
	}

	if cfg.SessionBackend == "" {
		cfg.SessionBackend = flexvm.SessionBackendFile
	}

	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = constants.DefaultHTTPTimeout
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = constants.DefaultUserAgent
	}

	return cfg
}

// Login implements flexvm.SessionClient.Login.
func (c *Client) Login(ctx context.Context) error {
	return c.tokenManager.Login(ctx)
}

// Logout implements flexvm.SessionClient.Logout.
func (c *Client) Logout(ctx context.Context) error {
	return c.tokenManager.Logout(ctx)
}

// SendRequest implements flexvm.SessionClient.SendRequest. The decoded body
// is returned as is; only HTTP errors are reported.
func (c *Client) SendRequest(ctx context.Context, path string, payload map[string]interface{}, method string) (flexvm.Response, error) {
	resp, err := c.httpClient.Do(ctx, &flexhttp.Request{Method: method, Path: path, Payload: payload})
	if err != nil {
		if resp != nil {
			return resp.Data, err
		}

		return nil, err
	}

	return resp.Data, nil
}

// Translate implements flexvm.Translator.Translate.
func (c *Client) Translate(selection flexvm.ProductSelection, validate bool) (*flexvm.WirePayload, error) {
	return c.translator.Translate(selection, validate)
}

// Untranslate implements flexvm.Translator.Untranslate.
func (c *Client) Untranslate(item map[string]interface{}) (map[string]interface{}, error) {
	return c.translator.Untranslate(item)
}

// Catalog returns the product catalog used by the translator.
func (c *Client) Catalog() *catalog.Catalog {
	return c.translator.Catalog()
}

// Token returns the current access token, empty before the first login.
func (c *Client) Token() string {
	return c.tokenManager.Token()
}

// SessionStore returns the configured session store.
func (c *Client) SessionStore() session.Store {
	return c.store
}
