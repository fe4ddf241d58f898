package flexvm

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration errors. These are raised before any network activity.
var (
	ErrConfigRequired     = errors.New("config is required")
	ErrInvalidConfig      = errors.New("invalid config")
	ErrMissingCredentials = errors.New("missing credentials")
	ErrUnsupportedMethod  = errors.New("invalid method, only POST and GET are supported")
	ErrNoAccessToken      = errors.New("authentication response has no access_token")
	ErrMissingFilter      = errors.New("declare configId or accountId and programSerialNumber")
	ErrMissingDateRange   = errors.New("startDate and endDate are required")
)

// MissingCredentialError names the credential that could not be resolved.
type MissingCredentialError struct {
	Field  string
	EnvVar string
}

// Error implements the error interface.
func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("please specify %s, or set environment variable: %s", e.Field, e.EnvVar)
}

// Unwrap allows errors.Is(err, ErrMissingCredentials).
func (e *MissingCredentialError) Unwrap() error {
	return ErrMissingCredentials
}

// UnknownProductError is returned for a product name absent from the catalog.
type UnknownProductError struct {
	Product string
	Known   []string
}

// Error implements the error interface.
func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("unknown product %q, supported products: %s", e.Product, strings.Join(e.Known, ", "))
}

// UnknownParameterError is returned for a parameter key that is neither a
// catalog name nor a numeric id.
type UnknownParameterError struct {
	Product   string
	Parameter string
}

// Error implements the error interface.
func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("unknown parameter %q for product %s", e.Parameter, e.Product)
}

// NoProductSelectedError is returned when a selection names no product.
type NoProductSelectedError struct{}

// Error implements the error interface.
func (e *NoProductSelectedError) Error() string {
	return "you didn't declare any product type, please declare one"
}

// MultipleProductsSelectedError is returned when a selection names more than
// one product.
type MultipleProductsSelectedError struct {
	Products []string
}

// Error implements the error interface.
func (e *MultipleProductsSelectedError) Error() string {
	return fmt.Sprintf("you declared %d product types: [%s], please declare one product type only",
		len(e.Products), strings.Join(e.Products, ", "))
}

// InvalidChoiceError is returned when a value is outside a parameter's
// declared choices.
type InvalidChoiceError struct {
	Value     interface{}
	Parameter string
	Choices   []string
}

// Error implements the error interface.
func (e *InvalidChoiceError) Error() string {
	return fmt.Sprintf("invalid value %v of parameter %s, support values: [%s]",
		e.Value, e.Parameter, strings.Join(e.Choices, ", "))
}

// InvalidRangeError is returned when an integer is outside a parameter's
// inclusive range. A nil bound is unbounded.
type InvalidRangeError struct {
	Value     int64
	Parameter string
	Min       *int64
	Max       *int64
}

// Error implements the error interface.
func (e *InvalidRangeError) Error() string {
	lower, upper := "-inf", "inf"
	if e.Min != nil {
		lower = fmt.Sprintf("%d", *e.Min)
	}

	if e.Max != nil {
		upper = fmt.Sprintf("%d", *e.Max)
	}

	return fmt.Sprintf("invalid value %d of parameter %s, support range: %s ~ %s (inclusive)",
		e.Value, e.Parameter, lower, upper)
}

// InvalidTypeError is returned when a value has the wrong type for its
// parameter.
type InvalidTypeError struct {
	Value     interface{}
	Parameter string
	Expected  string
}

// Error implements the error interface.
func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid value %v of parameter %s, expected %s", e.Value, e.Parameter, e.Expected)
}

// AuthenticationError is returned when the token endpoint rejects the login.
type AuthenticationError struct {
	StatusCode int
	Body       map[string]interface{}
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed with status code %d: %v", e.StatusCode, e.Body)
}

// RequestError is returned for HTTP responses with status >= 400.
type RequestError struct {
	StatusCode int
	Message    string
	Body       map[string]interface{}
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed with status code %d: %s", e.StatusCode, e.Message)
	}

	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// APIError is returned for successful HTTP responses carrying a non-zero
// application status.
type APIError struct {
	Status  int
	Message string
	Body    Response
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status: %d)", e.Message, e.Status)
}

// TransportError is returned when the request could not be sent at all.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("an error occurred while sending the %s request to %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err is a user-input validation failure.
func IsValidationError(err error) bool {
	var (
		unknownProduct *UnknownProductError
		unknownParam   *UnknownParameterError
		noProduct      *NoProductSelectedError
		multiProduct   *MultipleProductsSelectedError
		choice         *InvalidChoiceError
		rangeErr       *InvalidRangeError
		typeErr        *InvalidTypeError
	)

	return errors.As(err, &unknownProduct) ||
		errors.As(err, &unknownParam) ||
		errors.As(err, &noProduct) ||
		errors.As(err, &multiProduct) ||
		errors.As(err, &choice) ||
		errors.As(err, &rangeErr) ||
		errors.As(err, &typeErr)
}

// IsInvalidToken reports whether err carries the "Invalid security token."
// application error left over after the retry budget was spent.
func IsInvalidToken(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Status == -1 && apiErr.Message == "Invalid security token."
	}

	reqErr := &RequestError{}
	if errors.As(err, &reqErr) {
		return reqErr.Message == "Invalid security token."
	}

	return false
}
