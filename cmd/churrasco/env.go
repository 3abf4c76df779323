package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/churrascode/churrasco/internal/app"
	"github.com/churrascode/churrasco/internal/config"
	"github.com/churrascode/churrasco/internal/logging"
)

// openEnv loads the configuration named by --config and opens the data
// sources. Subcommands log to stderr.
func openEnv(cmd *cobra.Command) (*app.Environment, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(cmd.ErrOrStderr(), logging.ParseLevel(cfg.LogLevel))
	return app.Open(cfg, logger)
}

// collaboratorNames maps roster ids to names. A roster that cannot be read
// yields an empty map; callers fall back to the id.
func collaboratorNames(cmd *cobra.Command, env *app.Environment) map[string]string {
	names := map[string]string{}
	rows, err := env.Source.FetchRoster(cmd.Context())
	if err != nil {
		env.Logger.Warn("payment roster unavailable", "error", err)
		return names
	}
	for _, r := range rows {
		names[r.CollaboratorID] = r.Name
	}
	return names
}

func displayName(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return "#" + id
}
