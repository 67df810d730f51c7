package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/Brianali-codes/Remaya-full/internal/cliconfig"
	"github.com/Brianali-codes/Remaya-full/pkg/client"
)

var (
	bold  = color.New(color.Bold).Sprint
	faint = color.New(color.Faint).Sprint

	greenCheck = color.New(color.FgGreen).Sprint("✔")
	redCross   = color.New(color.FgRed).Sprint("✘")
)

// BeQuietError signals that the error was already reported to the
// user and the command should exit nonzero without another message.
type BeQuietError struct{}

func (BeQuietError) Error() string {
	return "command failed"
}

func logSuccess(format string, args ...any) {
	log.Info().Msgf("%s "+format, append([]any{greenCheck}, args...)...)
}

func logError(err error, correlation, msg string) error {
	if correlation != "" {
		log.Error().Msgf("%s %s (correlation ID: %s)", redCross, msg, correlation)
	} else {
		log.Error().Msgf("%s %s", redCross, msg)
	}
	log.Error().Msgf("error: %v", err)
	return BeQuietError{}
}

func getClient() (*client.Client, error) {
	// we need the user to provide some server address first
	server := viper.GetString(RemayaAddrKey)
	if server == "" {
		return nil, fmt.Errorf("server address not configured, provide via --server or env")
	}

	var token string
	if cfg, err := cliconfig.Load(); err == nil {
		credential, err := cfg.GetCredential(server)
		if err != nil {
			if !errors.Is(err, cliconfig.ErrCredentialNotFound) {
				return nil, err
			}
		} else {
			token = credential.Token
		}
	}

	return client.New(server, client.WithAuthToken(token)), nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
