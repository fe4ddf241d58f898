package flexvm_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fivetwenty-io/flexvm/pkg/flexvm"
	"github.com/stretchr/testify/assert"
)

func int64p(v int64) *int64 { return &v }

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "missing credential",
			err:  &flexvm.MissingCredentialError{Field: "username", EnvVar: "FORTIFLEX_ACCESS_USERNAME"},
			want: "please specify username, or set environment variable: FORTIFLEX_ACCESS_USERNAME",
		},
		{
			name: "unknown product",
			err:  &flexvm.UnknownProductError{Product: "fortiToaster", Known: []string{"fortiGateBundle", "fortiManager"}},
			want: `unknown product "fortiToaster", supported products: fortiGateBundle, fortiManager`,
		},
		{
			name: "no product",
			err:  &flexvm.NoProductSelectedError{},
			want: "you didn't declare any product type, please declare one",
		},
		{
			name: "multiple products",
			err:  &flexvm.MultipleProductsSelectedError{Products: []string{"fortiWeb", "fortiManager"}},
			want: "you declared 2 product types: [fortiWeb, fortiManager], please declare one product type only",
		},
		{
			name: "choice",
			err:  &flexvm.InvalidChoiceError{Value: "XYZ", Parameter: "service", Choices: []string{"FC", "UTP"}},
			want: "invalid value XYZ of parameter service, support values: [FC, UTP]",
		},
		{
			name: "bounded range",
			err:  &flexvm.InvalidRangeError{Value: 97, Parameter: "cpu", Min: int64p(1), Max: int64p(96)},
			want: "invalid value 97 of parameter cpu, support range: 1 ~ 96 (inclusive)",
		},
		{
			name: "open range",
			err:  &flexvm.InvalidRangeError{Value: -1, Parameter: "storage", Min: int64p(0)},
			want: "invalid value -1 of parameter storage, support range: 0 ~ inf (inclusive)",
		},
		{
			name: "request with message",
			err:  &flexvm.RequestError{StatusCode: 400, Message: "bad"},
			want: "request failed with status code 400: bad",
		},
		{
			name: "request without message",
			err:  &flexvm.RequestError{StatusCode: 502},
			want: "request failed with status code 502",
		},
		{
			name: "api",
			err:  &flexvm.APIError{Status: 1, Message: "Config not found"},
			want: "Config not found (status: 1)",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	t.Parallel()

	var missing error = &flexvm.MissingCredentialError{Field: "password", EnvVar: "FORTIFLEX_ACCESS_PASSWORD"}
	assert.ErrorIs(t, fmt.Errorf("login: %w", missing), flexvm.ErrMissingCredentials)

	cause := errors.New("connection refused")
	transport := &flexvm.TransportError{Method: "POST", URL: "https://example.com", Err: cause}
	assert.ErrorIs(t, transport, cause)
	assert.Contains(t, transport.Error(), "POST request to https://example.com")
}

func TestIsValidationError(t *testing.T) {
	t.Parallel()

	assert.True(t, flexvm.IsValidationError(fmt.Errorf("wrapped: %w", &flexvm.InvalidTypeError{Parameter: "cpu"})))
	assert.True(t, flexvm.IsValidationError(&flexvm.UnknownParameterError{Parameter: "gpu"}))
	assert.False(t, flexvm.IsValidationError(&flexvm.APIError{Status: 1}))
	assert.False(t, flexvm.IsValidationError(nil))
}

func TestIsInvalidToken(t *testing.T) {
	t.Parallel()

	assert.True(t, flexvm.IsInvalidToken(&flexvm.APIError{Status: -1, Message: "Invalid security token."}))
	assert.True(t, flexvm.IsInvalidToken(fmt.Errorf("x: %w", &flexvm.RequestError{StatusCode: 401, Message: "Invalid security token."})))
	assert.False(t, flexvm.IsInvalidToken(&flexvm.APIError{Status: 1, Message: "Invalid security token."}))
	assert.False(t, flexvm.IsInvalidToken(flexvm.ErrConfigRequired))
}
