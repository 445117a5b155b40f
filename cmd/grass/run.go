package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jgoizueta/grass-gis/pkg/command"
	"github.com/jgoizueta/grass-gis/pkg/logging"
	"github.com/jgoizueta/grass-gis/pkg/session"
)

var runCmd = &cobra.Command{
	Use:   "run <tool> [flags and key=value options...]",
	Short: "Run one GRASS command inside a session",
	Long: `Run opens a session from the configuration, executes a single GRASS
command, and disposes the session, restoring the prior environment.

Example:
  grass run --config session.toml -- r.resamp.stats input=map1 output=map2`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.GetLogger("cmd.run")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		line := strings.Join(args, " ")
		parsed, err := command.Parse(line)
		if err != nil {
			return err
		}

		logger.Info().
			Str("tool", parsed.Name()).
			Bool("dryRun", cfg.DryRun).
			Msg("Starting session")

		return session.Session(*cfg, func(c *session.Context) error {
			_, err := c.Execute(parsed)
			return err
		})
	},
}
