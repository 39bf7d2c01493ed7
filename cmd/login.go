package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cartastcg/cartas-tray/internal/api"
	"github.com/cartastcg/cartas-tray/internal/auth"
	"github.com/cartastcg/cartas-tray/internal/colors"
	"github.com/cartastcg/cartas-tray/internal/config"
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the bearer token for the Cartas backend",
	Long: `Store the bearer token for the Cartas backend.

The token is saved under the config directory and used by every other
command. The token is validated with a single REST call before saving.

USAGE:
    cartas-tray login --token <token> [OPTIONS]

OPTIONS:
    --token <token>    Bearer token issued by the Cartas backend (required)
    --user <id>        Current user id, used to suppress self-originated events
    --server <url>     Override the configured server URL
    -h, --help         Show this help`,
	RunE: runLogin,
}

var (
	loginToken  string
	loginUserID string
	loginServer string
)

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringVar(&loginToken, "token", "", "Bearer token")
	loginCmd.Flags().StringVar(&loginUserID, "user", "", "Current user id")
	loginCmd.Flags().StringVar(&loginServer, "server", "", "Server URL override")
	_ = loginCmd.MarkFlagRequired("token")
}

func runLogin(cmd *cobra.Command, args []string) error {
	if loginServer != "" {
		config.Set("server_url", loginServer)
	}

	// Probe the token before persisting it.
	client := api.NewHTTPClient(config.Get("server_url", ""), loginToken)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := client.UnreadMessageCount(ctx); err != nil {
		return fmt.Errorf("token validation failed: %w", err)
	}

	session := auth.Session{Token: loginToken, UserID: loginUserID}
	if err := auth.NewStore().Save(session); err != nil {
		return fmt.Errorf("error saving session: %w", err)
	}

	colors.Success("Logged in")
	log.Info("session saved", "user_id", loginUserID)
	return nil
}
