package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cartastcg/cartas-tray/internal/colors"
	"github.com/cartastcg/cartas-tray/internal/config"
	"github.com/cartastcg/cartas-tray/internal/logging"
	"github.com/cartastcg/cartas-tray/internal/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cartas-tray",
	Short: "A live notification tray for the Cartas trading-card platform.",
	Long:  `A live notification tray for the Cartas trading-card platform.`,
}

// log is the process-wide structured logger, replaced during bootstrap
// when file logging is enabled.
var log = logging.Noop()

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Set version for use in help output
	rootCmd.Version = version.String()

	// Hide the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		printHelpText(cmd)
	})

	cobra.OnInitialize(bootstrap)
}

// bootstrap loads config and stands up logging before any command runs.
func bootstrap() {
	config.Load()

	cfg := logging.FromGlobalConfig()
	if logger, err := logging.Init(cfg); err == nil {
		log = logger
		colors.SetLogger(logger)
	}
	colors.SetDebug(config.GetBool("debug", false))
}

func printHelpText(cmd *cobra.Command) {
	commandOrder := []string{
		"follow",
		"status",
		"counts",
		"render",
		"login",
		"logout",
		"list",
		"clear",
		"help",
		"version",
	}

	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Root().Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", found.Use, found.Short))
	}

	helpText := fmt.Sprintf(`cartas-tray v%s

A live notification tray for the Cartas trading-card platform.

USAGE:
    cartas-tray [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    -h, --help      Show help message
`, version.String(), strings.Join(cmdLines, "\n"))
	fmt.Print(helpText)
}
