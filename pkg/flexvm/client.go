package flexvm

import (
	"context"
	"time"
)

// ConfigsClient manages product configurations.
type ConfigsClient interface {
	Create(ctx context.Context, request *ConfigCreateRequest) (Response, error)
	List(ctx context.Context, request *ConfigListRequest) (Response, error)
	Update(ctx context.Context, request *ConfigUpdateRequest) (Response, error)
	Enable(ctx context.Context, id int) (Response, error)
	Disable(ctx context.Context, id int) (Response, error)
}

// EntitlementsClient manages entitlements (licenses) issued from configurations.
type EntitlementsClient interface {
	CreateVM(ctx context.Context, request *EntitlementVMCreateRequest) (Response, error)
	CreateHardware(ctx context.Context, request *EntitlementHardwareCreateRequest) (Response, error)
	CreateCloud(ctx context.Context, request *EntitlementCloudCreateRequest) (Response, error)
	List(ctx context.Context, request *EntitlementListRequest) (Response, error)
	Update(ctx context.Context, request *EntitlementUpdateRequest) (Response, error)
	Stop(ctx context.Context, serialNumber string) (Response, error)
	Reactivate(ctx context.Context, serialNumber string) (Response, error)
	RegenerateToken(ctx context.Context, serialNumber string) (Response, error)
	Points(ctx context.Context, request *EntitlementPointsRequest) (Response, error)
}

// GroupsClient provides access to asset folders.
type GroupsClient interface {
	List(ctx context.Context, request *GroupListRequest) (Response, error)
	NextToken(ctx context.Context, request *GroupNextTokenRequest) (Response, error)
}

// ProgramsClient provides access to FortiFlex programs.
type ProgramsClient interface {
	List(ctx context.Context) (Response, error)
}

// Translator converts product selections between the human and wire schemas.
type Translator interface {
	Translate(selection ProductSelection, validate bool) (*WirePayload, error)
	Untranslate(item map[string]interface{}) (map[string]interface{}, error)
}

// SessionClient exposes the authenticated request layer.
type SessionClient interface {
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	SendRequest(ctx context.Context, path string, payload map[string]interface{}, method string) (Response, error)
}

type Client interface {
	SessionClient
	Translator

	Configs() ConfigsClient
	Entitlements() EntitlementsClient
	Groups() GroupsClient
	Programs() ProgramsClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Session store backends.
const (
	SessionBackendFile = "file"
	SessionBackendBolt = "bolt"
	SessionBackendNATS = "nats"
)

// NoRetries as Config.RetryLimit sends a request once and re-logs in once
// on an invalid token, without further re-sends.
const NoRetries = -1

// Config represents client configuration for building a flexvm.Client.
//
// # Credentials
//
// Username and Password are used for the OAuth password grant against
// AuthURL. When either is empty it is read from FORTIFLEX_ACCESS_USERNAME /
// FORTIFLEX_ACCESS_PASSWORD, falling back to the legacy
// FLEXVM_ACCESS_USERNAME / FLEXVM_ACCESS_PASSWORD. Credentials are resolved
// on the first login, so building a client never fails for missing
// credentials.
//
// # Sessions
//
// When PersistSession is true the access token is stored together with a
// hash of the credentials and reused by later processes without contacting
// the authentication endpoint. The stored token is not verified; if the
// server rejects it the request layer re-authenticates.
type Config struct {
	// AuthURL: OAuth token endpoint. Defaults to the FortiCare customer API.
	AuthURL string `validate:"omitempty,url"`
	// APIURL: base URL all resource paths are joined to.
	APIURL string `validate:"omitempty,url"`

	Username string
	Password string

	// RetryLimit: number of re-sends on "Invalid security token." before
	// giving up. Zero means the default (4); NoRetries disables them.
	RetryLimit int `validate:"gte=-1,lte=20"`

	// PersistSession enables the session store.
	PersistSession bool
	// SessionBackend selects the store: "file" (default), "bolt" or "nats".
	SessionBackend string `validate:"omitempty,oneof=file bolt nats"`
	// SessionPath is the file (or bbolt database) path. Defaults to
	// fortiflex_session.json in the working directory.
	SessionPath string
	// NATSURL is the server used by the "nats" backend.
	NATSURL string `validate:"required_if=SessionBackend nats"`

	// LogPath enables the append-only request/response trace log. Falls back
	// to FORTIFLEX_LOG_PATH.
	LogPath string

	// HTTPTimeout bounds each HTTP call at the transport level.
	HTTPTimeout time.Duration
	// Logger: optional structured logger.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
