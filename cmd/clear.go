package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cartastcg/cartas-tray/internal/colors"
)

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the notification history",
	Long: `Clear the notification history.

USAGE:
    cartas-tray clear`,
	RunE: runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	store := openHistory()
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("closing history store", "error", err)
		}
	}()

	if err := store.Clear(); err != nil {
		return fmt.Errorf("error clearing history: %w", err)
	}
	colors.Success("History cleared")
	return nil
}
