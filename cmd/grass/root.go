package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/jgoizueta/grass-gis/internal/version"
	"github.com/jgoizueta/grass-gis/pkg/config"
	"github.com/jgoizueta/grass-gis/pkg/logging"
)

var (
	verbosity int
	dryRun    bool
	cfgFile   string

	rootCmd = &cobra.Command{
		Use:   "grass",
		Short: "Run GRASS GIS commands inside a managed session",
		Long: `grass orchestrates the GRASS GIS command-line tools: it prepares the
environment a GRASS session expects (GISRC resource file, GISBASE and
GRASS_* variables, extended search paths), runs the tools, records a
per-session history, and restores the prior environment afterwards.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Echo and record commands without executing them")
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Session config file (TOML or YAML)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(manCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(genconfigCmd)
	rootCmd.AddCommand(envCmd)
}

// loadConfig builds the session configuration from the config file, the
// GRASSGIS_* environment and the command-line flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("dry-run") || cmd.InheritedFlags().Changed("dry-run") {
		overrides["dry_run"] = dryRun
	}
	return config.Load(cfgFile, overrides)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("grass version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `To load completions:

Bash:
  $ source <(grass completion bash)

Zsh:
  $ grass completion zsh > "${fpath[1]}/_grass"

Fish:
  $ grass completion fish | source

PowerShell:
  PS> grass completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			if err := cmd.Root().GenBashCompletion(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate bash completion")
			}
		case "zsh":
			if err := cmd.Root().GenZshCompletion(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate zsh completion")
			}
		case "fish":
			if err := cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true); err != nil {
				log.Error().Err(err).Msg("Failed to generate fish completion")
			}
		case "powershell":
			if err := cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate powershell completion")
			}
		}
	},
}

var manCmd = &cobra.Command{
	Use:   "man",
	Short: "Generate man page",
	RunE: func(cmd *cobra.Command, args []string) error {
		header := &doc.GenManHeader{
			Title:   "GRASS",
			Section: "1",
		}
		return doc.GenManTree(rootCmd, header, "/tmp")
	},
}
