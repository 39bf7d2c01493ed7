package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cartastcg/cartas-tray/internal/auth"
	"github.com/cartastcg/cartas-tray/internal/colors"
)

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session and notification history",
	Long: `Clear the stored session and notification history.

After logout no command performs network activity until the next login.

USAGE:
    cartas-tray logout`,
	RunE: runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := auth.NewStore().Clear(); err != nil {
		return fmt.Errorf("error clearing session: %w", err)
	}

	store := openHistory()
	if err := store.Clear(); err != nil {
		log.Warn("clearing history", "error", err)
	}
	if err := store.Close(); err != nil {
		log.Warn("closing history store", "error", err)
	}

	colors.Success("Logged out")
	return nil
}
