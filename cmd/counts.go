package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cartastcg/cartas-tray/internal/api"
	"github.com/cartastcg/cartas-tray/internal/config"
)

// countsCmd represents the counts command
var countsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Print the raw unread and pending counters",
	Long: `Print the raw unread and pending counters.

Output is "<unread> <pending>" on a single line, for scripting.

USAGE:
    cartas-tray counts`,
	RunE: runCounts,
}

// countsOutputWriter is the writer used by counts output. Can be changed for testing.
var countsOutputWriter io.Writer = os.Stdout

func init() {
	rootCmd.AddCommand(countsCmd)
}

func runCounts(cmd *cobra.Command, args []string) error {
	session, err := requireSession()
	if err != nil {
		return err
	}

	client := api.NewHTTPClient(config.Get("server_url", ""), session.Token)
	unread, pending, err := restCounts{client: client}.NotificationCounts()
	if err != nil {
		return err
	}

	fmt.Fprintf(countsOutputWriter, "%d %d\n", unread, pending)
	return nil
}
