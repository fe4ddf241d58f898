// Package auth acquires FortiCare access tokens with the OAuth password
// grant and caches them in a session store.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/fivetwenty-io/flexvm/internal/constants"
	flexhttp "github.com/fivetwenty-io/flexvm/internal/http"
	"github.com/fivetwenty-io/flexvm/internal/session"
	"github.com/fivetwenty-io/flexvm/internal/tracelog"
	"github.com/fivetwenty-io/flexvm/pkg/flexvm"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
)

// State is the login state of a PasswordTokenManager.
type State int

const (
	Unauthenticated State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Config configures a PasswordTokenManager.
type Config struct {
	AuthURL  string
	Username string
	Password string
	// PersistSession enables the stored-session fast path and saving after
	// each network login.
	PersistSession bool
	// Store is removed from on Logout even when PersistSession is false.
	Store      session.Store
	HTTPClient *http.Client
	Trace      *tracelog.Logger
	Logger     flexvm.Logger
	UserAgent  string
}

// PasswordTokenManager logs in with a username and password.
type PasswordTokenManager struct {
	config    Config
	transport *retryablehttp.Client
	mutex     sync.RWMutex
	state     State
	token     string
}

// NewPasswordTokenManager creates a token manager. Credentials are resolved
// on the first login.
func NewPasswordTokenManager(config *Config) *PasswordTokenManager {
	cfg := *config
	if cfg.AuthURL == "" {
		cfg.AuthURL = constants.DefaultAuthURL
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = constants.DefaultUserAgent
	}

	return &PasswordTokenManager{
		config:    cfg,
		transport: flexhttp.NewTransport(cfg.HTTPClient, cfg.Logger),
		state:     Unauthenticated,
	}
}

// Login authenticates and fails on an HTTP error from the token endpoint.
func (m *PasswordTokenManager) Login(ctx context.Context) error {
	return m.login(ctx, true)
}

// LoginUnchecked authenticates without checking the HTTP status; it still
// fails when no access token is returned.
func (m *PasswordTokenManager) LoginUnchecked(ctx context.Context) error {
	return m.login(ctx, false)
}

func (m *PasswordTokenManager) login(ctx context.Context, checkError bool) error {
	creds, err := ResolveCredentials(m.config.Username, m.config.Password)
	if err != nil {
		return err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	previous := m.state
	m.state = Authenticating

	hash := ValidationHash(creds.Username, creds.Password)

	if m.config.PersistSession && m.config.Store != nil {
		stored, err := m.config.Store.Load(ctx)
		if err != nil {
			m.warn("failed to load stored session", err)
		} else if stored != nil && stored.ValidationHash == hash {
			m.token = stored.AccessToken
			m.state = Authenticated
			m.debug("using stored session")

			return nil
		}
	}

	token, err := m.requestToken(ctx, creds, checkError)
	if err != nil {
		m.state = previous

		return err
	}

	m.token = token
	m.state = Authenticated

	if m.config.PersistSession && m.config.Store != nil {
		err := m.config.Store.Save(ctx, &session.Session{AccessToken: token, ValidationHash: hash})
		if err != nil {
			m.warn("failed to save session", err)
		}
	}

	return nil
}

func (m *PasswordTokenManager) requestToken(ctx context.Context, creds Credentials, checkError bool) (string, error) {
	payload := map[string]interface{}{
		"username":   creds.Username,
		"password":   creds.Password,
		"client_id":  constants.ClientID,
		"grant_type": constants.GrantType,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal login request: %w", err)
	}

	m.config.Trace.Request(http.MethodPost, m.config.AuthURL, payload)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, m.config.AuthURL, data)
	if err != nil {
		return "", fmt.Errorf("failed to create login request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", m.config.UserAgent)

	resp, err := m.transport.Do(req)
	if err != nil {
		return "", &flexvm.TransportError{Method: http.MethodPost, URL: m.config.AuthURL, Err: err}
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &flexvm.TransportError{Method: http.MethodPost, URL: m.config.AuthURL, Err: err}
	}

	var decoded map[string]interface{}
	_ = json.Unmarshal(body, &decoded)

	m.config.Trace.Response(resp.StatusCode, decoded)

	if checkError && resp.StatusCode >= constants.HTTPStatusBadRequest {
		return "", &flexvm.AuthenticationError{StatusCode: resp.StatusCode, Body: decoded}
	}

	token := gjson.GetBytes(body, "access_token")
	if !token.Exists() || token.String() == "" {
		return "", fmt.Errorf("%w (status code %d)", flexvm.ErrNoAccessToken, resp.StatusCode)
	}

	return token.String(), nil
}

// Logout removes the stored session. The in-memory token is kept.
func (m *PasswordTokenManager) Logout(ctx context.Context) error {
	if m.config.Store == nil {
		return nil
	}

	if err := m.config.Store.Remove(ctx); err != nil {
		return fmt.Errorf("failed to remove session: %w", err)
	}

	return nil
}

// Token returns the current access token.
func (m *PasswordTokenManager) Token() string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.token
}

// State returns the current login state.
func (m *PasswordTokenManager) State() State {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.state
}

// Authenticated reports whether a token has been acquired.
func (m *PasswordTokenManager) Authenticated() bool {
	return m.State() == Authenticated
}

func (m *PasswordTokenManager) warn(msg string, err error) {
	if m.config.Logger != nil {
		m.config.Logger.Warn(msg, map[string]interface{}{"error": err.Error()})
	}
}

func (m *PasswordTokenManager) debug(msg string) {
	if m.config.Logger != nil {
		m.config.Logger.Debug(msg, nil)
	}
}
