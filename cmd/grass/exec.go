package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jgoizueta/grass-gis/pkg/command"
	"github.com/jgoizueta/grass-gis/pkg/logging"
	"github.com/jgoizueta/grass-gis/pkg/session"
	"github.com/jgoizueta/grass-gis/pkg/style"
)

var execSummary bool

var execCmd = &cobra.Command{
	Use:   "exec [script]",
	Short: "Run a batch of GRASS commands inside one session",
	Long: `Exec reads GRASS command lines from a script file (or stdin when no
file is given), one per line, and executes them all inside a single
session. Blank lines and lines starting with # are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.GetLogger("cmd.exec")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		var in io.Reader = cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			in = f
		}

		lines, err := readCommandLines(in)
		if err != nil {
			return err
		}
		logger.Info().Int("commands", len(lines)).Msg("Starting batch session")

		var history string
		err = session.Session(*cfg, func(c *session.Context) error {
			for _, line := range lines {
				parsed, err := command.Parse(line)
				if err != nil {
					return err
				}
				if _, err := c.Execute(parsed); err != nil {
					return err
				}
			}
			if execSummary {
				history = style.RenderHistory(c.History())
			}
			return nil
		})

		if history != "" {
			fmt.Fprintln(cmd.OutOrStdout(), history)
		}
		return err
	},
}

func init() {
	execCmd.Flags().BoolVar(&execSummary, "summary", false, "Print a history summary after the session")
}

func readCommandLines(in io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}
