package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/churrascode/churrasco/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "churrasco: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		prefsPath   string
		pollSeconds int
	)

	root := &cobra.Command{
		Use:   "churrasco",
		Short: "Dashboard for the ChurrasCode barbecue",
		Long: `churrasco shows the event countdown, the payment roster and the list of
items each collaborator brings. Without a subcommand it starts the terminal
dashboard.

Examples:
  churrasco                          # start the dashboard
  churrasco status                   # print the current totals
  churrasco items add 3 Chopp --qty 2 --unit "barril 50L"
  churrasco extras set 3=2 7=1`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			opts := app.Options{ConfigPath: configPath, PrefsPath: prefsPath}
			if pollSeconds > 0 {
				opts.PollEvery = pollSeconds
			}
			return app.Run(cmd.Context(), opts)
		},
	}

	root.PersistentFlags().String("config", "", "config file (default ~/.config/churrasco/config.toml)")
	root.Flags().StringVar(&prefsPath, "prefs", "", "preferences file (default ~/.config/churrasco/prefs.toml)")
	root.Flags().IntVar(&pollSeconds, "poll", 0, "refresh interval in seconds (defaults to the configured interval)")

	root.AddCommand(statusCmd())
	root.AddCommand(itemsCmd())
	root.AddCommand(extrasCmd())
	return root
}
