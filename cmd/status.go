package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cartastcg/cartas-tray/internal/api"
	"github.com/cartastcg/cartas-tray/internal/colors"
	"github.com/cartastcg/cartas-tray/internal/config"
	"github.com/cartastcg/cartas-tray/internal/format"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a status-bar snippet with notification counts",
	Long: `Show a status-bar snippet with notification counts.

Polls the REST endpoints once; intended for status bars and prompts.
Prints nothing when there are no notifications or status output is
disabled in config.

USAGE:
    cartas-tray status [OPTIONS]

OPTIONS:
    --format=<format>    Output format: compact, detailed, count-only
    -h, --help           Show this help

EXAMPLES:
    cartas-tray status                      # e.g. "🔔 4"
    cartas-tray status --format=detailed    # e.g. "m:3 r:1"
    cartas-tray status --format=count-only  # e.g. "4"`,
	RunE: runStatus,
}

var statusFormat string

// statusOutputWriter is the writer used by status output. Can be changed for testing.
var statusOutputWriter io.Writer = os.Stdout

// restCounts fetches both counters over the REST API.
type restCounts struct {
	client api.Client
}

func (r restCounts) NotificationCounts() (int, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	unread, err := r.client.UnreadMessageCount(ctx)
	if err != nil {
		return 0, 0, err
	}
	pending, err := r.client.PendingRequestCount(ctx)
	if err != nil {
		return 0, 0, err
	}
	return unread, pending, nil
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVar(&statusFormat, "format", "", "Output format: compact, detailed, count-only")
}

func runStatus(cmd *cobra.Command, args []string) error {
	session, err := requireSession()
	if err != nil {
		// Status bars poll blindly; a missing session is not an error.
		return nil
	}

	fmtName := statusFormat
	if fmtName == "" {
		fmtName = config.Get("status_format", "compact")
	}
	opts := format.StatusOptions{
		Format:  fmtName,
		Enabled: config.GetBool("status_enabled", true),
	}

	client := api.NewHTTPClient(config.Get("server_url", ""), session.Token)
	out, err := format.RenderStatus(restCounts{client: client}, opts)
	if err != nil {
		colors.Debug(fmt.Sprintf("status: %v", err))
		return nil
	}
	if out != "" {
		fmt.Fprintln(statusOutputWriter, out)
	}
	return nil
}
