package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jgoizueta/grass-gis/pkg/session"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the environment a session would set",
	Long: `Env prints the variables a session sets for its lifetime, computed
from the configuration and the current environment. GISRC is excluded:
its value is a per-session temp file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		for _, v := range session.Environment(*cfg) {
			fmt.Fprintln(cmd.OutOrStdout(), v.String())
		}
		return nil
	},
}
