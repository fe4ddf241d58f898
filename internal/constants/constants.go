package constants

import "time"

// Endpoints.
const (
	// DefaultAuthURL is the FortiCare OAuth token endpoint.
	DefaultAuthURL = "https://customerapiauth.fortinet.com/api/v1/oauth/token/"

	// DefaultAPIURL is the base URL resource paths are joined to.
	DefaultAPIURL = "https://support.fortinet.com/ES/api/"
)

// Resource paths, relative to the API URL.
const (
	PathConfigsCreate  = "fortiflex/v2/configs/create"
	PathConfigsList    = "fortiflex/v2/configs/list"
	PathConfigsUpdate  = "fortiflex/v2/configs/update"
	PathConfigsEnable  = "fortiflex/v2/configs/enable"
	PathConfigsDisable = "fortiflex/v2/configs/disable"

	PathEntitlementsVMCreate       = "fortiflex/v2/entitlements/vm/create"
	PathEntitlementsHardwareCreate = "fortiflex/v2/entitlements/hardware/create"
	PathEntitlementsCloudCreate    = "fortiflex/v2/entitlements/cloud/create"
	PathEntitlementsList           = "fortiflex/v2/entitlements/list"
	PathEntitlementsUpdate         = "fortiflex/v2/entitlements/update"
	PathEntitlementsStop           = "fortiflex/v2/entitlements/stop"
	PathEntitlementsReactivate     = "fortiflex/v2/entitlements/reactivate"
	PathEntitlementsToken          = "fortiflex/v2/entitlements/vm/token"
	PathEntitlementsPoints         = "fortiflex/v2/entitlements/points"

	PathGroupsList       = "fortiflex/v2/groups/list"
	PathGroupsListLegacy = "flexvm/v1/groups/list"
	PathGroupsNextToken  = "fortiflex/v2/groups/nexttoken"

	PathProgramsList = "fortiflex/v2/programs/list"
)

// OAuth password grant.
const (
	// ClientID is the fixed client id sent with every login.
	ClientID = "flexvm"

	// GrantType is the OAuth grant used for login.
	GrantType = "password"
)

// Environment variables.
const (
	EnvUsername       = "FORTIFLEX_ACCESS_USERNAME"
	EnvPassword       = "FORTIFLEX_ACCESS_PASSWORD"
	EnvLegacyUsername = "FLEXVM_ACCESS_USERNAME"
	EnvLegacyPassword = "FLEXVM_ACCESS_PASSWORD"
	EnvLogPath        = "FORTIFLEX_LOG_PATH"
)

// Retry protocol.
const (
	// DefaultRetryLimit bounds re-sends on an invalid token.
	DefaultRetryLimit = 4

	// InvalidTokenStatus is the application status of an expired token.
	InvalidTokenStatus = -1

	// InvalidTokenMessage is the application message of an expired token.
	InvalidTokenMessage = "Invalid security token."
)

// Wire schema.
const (
	// EmptyListSentinel marks an empty list-typed parameter.
	EmptyListSentinel = "NONE"

	// ParameterIDMarker triggers the id-to-name rewrite of error messages.
	ParameterIDMarker = "parameter id"
)

// Sessions.
const (
	// DefaultSessionFile is the relative path of the persisted session.
	DefaultSessionFile = "fortiflex_session.json"

	// DefaultSessionDB is the relative path of the bbolt session database.
	DefaultSessionDB = "fortiflex_session.db"

	// SessionBucket is the bbolt bucket and NATS KV bucket name.
	SessionBucket = "fortiflex_sessions"

	// SessionKey is the key the session is stored under.
	SessionKey = "session"

	// SessionOpenTimeout bounds waiting for the bbolt file lock.
	SessionOpenTimeout = 1 * time.Second
)

// Logging.
const (
	// RedactedValue replaces sensitive fields in the trace log.
	RedactedValue = "******"
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration and session files.
	ConfigFilePerm = 0600

	// LogFilePerm is the permission for the trace log.
	LogFilePerm = 0644
)

// HTTP.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// HTTPStatusBadRequest is the first error status.
	HTTPStatusBadRequest = 400

	// DefaultUserAgent is sent when none is configured.
	DefaultUserAgent = "flexvm-go/1.0"
)
