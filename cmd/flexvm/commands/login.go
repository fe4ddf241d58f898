package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fivetwenty-io/flexvm/internal/auth"
	"github.com/fivetwenty-io/flexvm/pkg/flexvm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate with FortiFlex",
		Long: `Request an access token with the configured credentials.

With --persist-session the token is stored and reused by later commands until
the server rejects it or the credentials change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := clientConfig(cmd)

			creds, err := auth.ResolveCredentials(config.Username, config.Password)
			if errors.Is(err, flexvm.ErrMissingCredentials) && term.IsTerminal(int(os.Stdin.Fd())) {
				creds, err = promptCredentials(cmd, creds)
			}

			if err != nil {
				return err
			}

			config.Username = creds.Username
			config.Password = creds.Password

			client, err := newClient(cmd.Context(), config)
			if err != nil {
				return err
			}

			if err := client.Login(cmd.Context()); err != nil {
				return fmt.Errorf("failed to login: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Authenticated as %s\n", creds.Username)

			if viper.GetBool("persist-session") {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Session stored for later commands")
			}

			return nil
		},
	}
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd)
			if err != nil {
				return err
			}

			if err := client.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("failed to logout: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")

			return nil
		},
	}
}

func promptCredentials(cmd *cobra.Command, creds auth.Credentials) (auth.Credentials, error) {
	if creds.Username == "" {
		username, err := prompt(cmd.InOrStdin(), cmd.ErrOrStderr(), "Username: ")
		if err != nil {
			return creds, err
		}

		creds.Username = username
	}

	if creds.Password == "" {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Password: ")

		password, err := term.ReadPassword(int(os.Stdin.Fd()))

		_, _ = fmt.Fprintln(cmd.ErrOrStderr())

		if err != nil {
			return creds, fmt.Errorf("failed to read password: %w", err)
		}

		creds.Password = string(password)
	}

	return auth.ResolveCredentials(creds.Username, creds.Password)
}

func prompt(in io.Reader, out io.Writer, label string) (string, error) {
	_, _ = fmt.Fprint(out, label)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimSpace(line), nil
}
