package auth

import (
	"crypto/md5" //nolint:gosec // change detection only, must match existing session files
	"encoding/hex"
	"fmt"

	"github.com/fivetwenty-io/flexvm/internal/constants"
	"github.com/fivetwenty-io/flexvm/pkg/flexvm"
	"github.com/kelseyhightower/envconfig"
)

// Credentials is a FortiCare API user.
type Credentials struct {
	Username string
	Password string
}

// accessEnv is read once with the FORTIFLEX prefix and once with the
// legacy FLEXVM prefix.
type accessEnv struct {
	Username string `envconfig:"ACCESS_USERNAME"`
	Password string `envconfig:"ACCESS_PASSWORD"`
}

// ResolveCredentials fills blank fields from FORTIFLEX_ACCESS_* and then
// FLEXVM_ACCESS_* environment variables.
func ResolveCredentials(username, password string) (Credentials, error) {
	creds := Credentials{Username: username, Password: password}

	for _, prefix := range []string{"FORTIFLEX", "FLEXVM"} {
		if creds.Username != "" && creds.Password != "" {
			break
		}

		var env accessEnv
		if err := envconfig.Process(prefix, &env); err != nil {
			return creds, fmt.Errorf("failed to read %s credentials from environment: %w", prefix, err)
		}

		if creds.Username == "" {
			creds.Username = env.Username
		}

		if creds.Password == "" {
			creds.Password = env.Password
		}
	}

	if creds.Username == "" {
		return creds, &flexvm.MissingCredentialError{Field: "username", EnvVar: constants.EnvUsername}
	}

	if creds.Password == "" {
		return creds, &flexvm.MissingCredentialError{Field: "password", EnvVar: constants.EnvPassword}
	}

	return creds, nil
}

// ValidationHash ties a stored session to the credentials it was issued for.
func ValidationHash(username, password string) string {
	sum := md5.Sum([]byte(username + password)) //nolint:gosec

	return hex.EncodeToString(sum[:])
}
