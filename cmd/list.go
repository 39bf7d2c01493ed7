package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cartastcg/cartas-tray/internal/format"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List received notifications from history",
	Long: `List received notifications from history.

USAGE:
    cartas-tray list [OPTIONS]

OPTIONS:
    --kind <kind>        Filter by kind (new_request, request_accepted,
                         request_declined, friendship_removed, user_blocked)
    --limit <n>          Maximum entries to show (default: 50)
    --format <format>    Output format: simple, compact, json (default: simple)
    -h, --help           Show this help`,
	RunE: runList,
}

var (
	listKind   string
	listLimit  int
	listFormat string
)

// listOutputWriter is the writer used by list output. Can be changed for testing.
var listOutputWriter io.Writer = os.Stdout

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listKind, "kind", "", "Filter by notification kind")
	listCmd.Flags().IntVar(&listLimit, "limit", 50, "Maximum entries to show")
	listCmd.Flags().StringVar(&listFormat, "format", "simple", "Output format: simple, compact, json")
}

func runList(cmd *cobra.Command, args []string) error {
	store := openHistory()
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("closing history store", "error", err)
		}
	}()

	entries, err := store.List(listKind, listLimit)
	if err != nil {
		return fmt.Errorf("error listing history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(listOutputWriter, "No notifications")
		return nil
	}

	formatter := format.NewFormatter(format.FormatterType(listFormat))
	return formatter.FormatEntries(entries, listOutputWriter)
}
