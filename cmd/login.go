package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Brianali-codes/Remaya-full/internal/cliconfig"
	"github.com/Brianali-codes/Remaya-full/internal/service"
	"github.com/Brianali-codes/Remaya-full/pkg/client"
)

var (
	loginPassword string
	loginAsAdmin  bool
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Authenticate with a Remaya server",
	Long: `Signs in with email and password and saves the issued session token
locally to allow future authenticated requests (like blog management).
The password is read from --password or the REMAYA_PASSWORD environment variable.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := args[0]

		password := loginPassword
		if password == "" {
			password = os.Getenv("REMAYA_PASSWORD")
		}
		if password == "" {
			return fmt.Errorf("password not provided, use --password or REMAYA_PASSWORD")
		}

		server := viper.GetString(RemayaAddrKey)
		if server == "" {
			return fmt.Errorf("server address not configured, provide via --server or env")
		}
		u, err := url.Parse(server)
		if err != nil {
			return fmt.Errorf("parsing server URL: %w", err)
		}

		cli := client.New(server)

		log.Info().Msgf("Signing in to server %q...", u.Host)

		var (
			result        *service.SessionResult
			correlationID string
		)
		if loginAsAdmin {
			result, correlationID, err = cli.AdminSignIn(cmd.Context(), email, password)
		} else {
			result, correlationID, err = cli.SignIn(cmd.Context(), email, password)
		}
		if err != nil {
			return logError(err, correlationID, "failed to sign in")
		}

		cfg, err := cliconfig.Load()
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("loading config: %w", err)
			}
			cfg = &cliconfig.CLIConfig{}
		}
		if cfg.Credentials == nil {
			cfg.Credentials = make(map[string]*cliconfig.Credential)
		}
		cfg.Credentials[u.Host] = &cliconfig.Credential{
			Token: result.Token,
		}
		if err := cliconfig.Save(cfg); err != nil {
			return logError(err, "", "login succeeded but could not save credentials")
		}

		logSuccess("saved credentials for %s (session expires %s)",
			bold(u.Host), result.ExpiresAt.Format("2006-01-02 15:04"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password")
	loginCmd.Flags().BoolVar(&loginAsAdmin, "admin", false, "Sign in with the administrator credential")
}
