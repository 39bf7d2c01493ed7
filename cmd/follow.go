package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cartastcg/cartas-tray/internal/colors"
	"github.com/cartastcg/cartas-tray/internal/toast"
	"github.com/cartastcg/cartas-tray/internal/tui"
)

// followCmd represents the follow command
var followCmd = &cobra.Command{
	Use:   "follow",
	Short: "Follow notifications in a live tray",
	Long: `Follow notifications in a live tray.

USAGE:
    cartas-tray follow [OPTIONS]

OPTIONS:
    --plain            Stream notifications to stdout instead of the TUI
    -h, --help         Show this help

KEYS (TUI mode):
    j/k    Move selection
    x      Dismiss selected notification
    C      Clear all notifications
    r      Refresh counters
    q      Quit`,
	RunE: runFollow,
}

var followPlain bool

// FollowOptions holds all parameters for the plain follow stream.
type FollowOptions struct {
	// Output is where notification lines are written (default os.Stdout).
	Output io.Writer
	// Events is an optional injected event channel for testing.
	Events <-chan toast.Toast
}

// FollowPlain streams toasts as plain lines until the context is cancelled
// or an interrupt arrives.
func FollowPlain(ctx context.Context, opts FollowOptions) error {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	colors.Info("Following notifications (Ctrl+C to stop)...")

	for {
		select {
		case <-ctx.Done():
			return nil
		case sig := <-sigChan:
			fmt.Fprintf(opts.Output, "\nReceived signal %v, stopping...\n", sig)
			return nil
		case t, ok := <-opts.Events:
			if !ok {
				return nil
			}
			printToast(t, opts.Output)
		}
	}
}

// printToast prints a single toast line with formatting.
func printToast(t toast.Toast, w io.Writer) {
	timeStr := t.CreatedAt.Format("2006-01-02 15:04:05")
	fmt.Fprintf(w, "[%s] [%s] %s\n", timeStr, t.Kind, t.Message)
}

func init() {
	rootCmd.AddCommand(followCmd)

	followCmd.Flags().BoolVar(&followPlain, "plain", false, "Stream notifications to stdout instead of the TUI")
}

func runFollow(cmd *cobra.Command, args []string) error {
	tr, err := buildTray()
	if err != nil {
		return err
	}
	defer tr.Close()

	tr.client.RequestInitialCounts()

	if followPlain {
		return followPlainStream(tr)
	}
	return followTUI(tr)
}

// followPlainStream bridges queue changes onto a channel and streams them.
func followPlainStream(tr *tray) error {
	events := make(chan toast.Toast, 16)
	// seen is only touched from the listener; the queue serializes
	// listener invocations.
	seen := make(map[string]bool)
	tr.queue.SetListener(func() {
		for _, t := range tr.queue.Items() {
			if seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			select {
			case events <- t:
			default:
				// Drop rather than block the queue.
			}
		}
	})

	return FollowPlain(context.Background(), FollowOptions{Events: events})
}

func followTUI(tr *tray) error {
	model := tui.NewModel(tr.client, tr.queue)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		colors.Error(fmt.Sprintf("Error running tray: %v", err))
		return err
	}
	return nil
}
