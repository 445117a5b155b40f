package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jgoizueta/grass-gis/pkg/config"
	"github.com/jgoizueta/grass-gis/pkg/describe"
	"github.com/jgoizueta/grass-gis/pkg/session"
	"github.com/jgoizueta/grass-gis/pkg/style"
)

var describeCmd = &cobra.Command{
	Use:   "describe <tool>",
	Short: "Show a GRASS tool's parameters and flags",
	Long: `Describe runs the tool with --interface-description inside a session
and renders the parsed parameter and flag list.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		// The description run is internal; keep the console quiet and let
		// Describe report failures itself.
		cfg.Echo = config.EchoNone
		cfg.Errors = config.ErrorsQuiet

		return session.Session(*cfg, func(c *session.Context) error {
			ti, err := describe.Describe(c, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), style.RenderInterface(ti))
			return nil
		})
	},
}
