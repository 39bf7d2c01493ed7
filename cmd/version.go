package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cartastcg/cartas-tray/internal/version"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cartas-tray version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cartas-tray v%s\n", version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
