package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/jgoizueta/grass-gis/pkg/config"
)

var genconfigOutput string

var genconfigCmd = &cobra.Command{
	Use:   "genconfig",
	Short: "Write a session config template",
	Long: `Genconfig emits a TOML session configuration populated with the
defaults. Fill in gisbase and location before using it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		cfg.GisBase = "/usr/local/grass-7.0.0"
		cfg.Location = "mylocation"

		data, err := toml.Marshal(cfg)
		if err != nil {
			return err
		}

		if genconfigOutput != "" {
			if err := os.WriteFile(genconfigOutput, data, 0644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", genconfigOutput)
			return nil
		}

		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	genconfigCmd.Flags().StringVarP(&genconfigOutput, "output", "o", "", "Write the template to a file instead of stdout")
}
