package commands

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/flexvm/pkg/flexclient"
	"github.com/fivetwenty-io/flexvm/pkg/flexvm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// clientConfig builds the client configuration from flags, environment and
// the config file.
func clientConfig(cmd *cobra.Command) *flexvm.Config {
	return &flexvm.Config{
		AuthURL:        viper.GetString("auth-url"),
		APIURL:         viper.GetString("api-url"),
		Username:       viper.GetString("username"),
		Password:       viper.GetString("password"),
		PersistSession: viper.GetBool("persist-session"),
		SessionBackend: viper.GetString("session-backend"),
		SessionPath:    viper.GetString("session-path"),
		NATSURL:        viper.GetString("nats-url"),
		LogPath:        viper.GetString("log-path"),
		Logger:         newLogger(cmd.ErrOrStderr(), viper.GetBool("verbose")),
	}
}

// newClient is replaced in tests.
var newClient = func(ctx context.Context, config *flexvm.Config) (flexvm.Client, error) {
	client, err := flexclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// CreateClient builds a client for cmd.
func CreateClient(cmd *cobra.Command) (flexvm.Client, error) {
	return newClient(cmd.Context(), clientConfig(cmd))
}
