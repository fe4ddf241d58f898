package constants

import "errors"

// Session store errors.
var (
	ErrUnknownSessionBackend = errors.New("unknown session backend")
	ErrNATSURLRequired       = errors.New("NATS URL is required for the nats session backend")
	ErrNilSession            = errors.New("session is nil")
)

// Catalog errors.
var (
	ErrDuplicateParameterID   = errors.New("duplicate parameter id")
	ErrDuplicateParameterName = errors.New("duplicate parameter name")
	ErrDuplicateProduct       = errors.New("duplicate product")
)

// Response errors.
var (
	ErrMissingProductType = errors.New("response item has no productType.id")
	ErrInvalidParameters  = errors.New("response item has malformed parameters")
	ErrEmptyResponse      = errors.New("empty response body")
)

// CLI errors.
var (
	ErrInvalidParamFlag    = errors.New("invalid --param, expected key=value")
	ErrProductRequired     = errors.New("--product or --params-file is required")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrEntitlementNotFound = errors.New("can't find target entitlement")
	ErrConfigIDRequired    = errors.New("please specify configId if you want to update configId, description or endDate")
)
