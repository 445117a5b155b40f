package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jgoizueta/grass-gis/pkg/config"
)

// EnvVar is a single environment variable in the order a session applies it.
type EnvVar struct {
	Name  string
	Value string
}

// String renders the pair as NAME=VALUE.
func (v EnvVar) String() string {
	return fmt.Sprintf("%s=%s", v.Name, v.Value)
}

// Environment computes the variables a session sets for the lifetime of the
// context, based on the configuration and the current process environment.
// GISRC is excluded: its value is the per-allocation temp file. Search-path
// variables (PATH, LD_LIBRARY_PATH, MANPATH) are extended with the toolsuite
// directories, never replaced.
func Environment(cfg config.Config) []EnvVar {
	vars := []EnvVar{
		{Name: "GISBASE", Value: cfg.GisBase},
		{Name: "GRASS_VERSION", Value: cfg.Version},
		{Name: "GRASS_MESSAGE_FORMAT", Value: cfg.MessageFormat},
		{Name: "GRASS_TRUECOLOR", Value: envBool(cfg.TrueColor)},
		{Name: "GRASS_TRANSPARENT", Value: envBool(cfg.Transparent)},
		{Name: "GRASS_PNG_AUTO_WRITE", Value: envBool(cfg.PNGAutoWrite)},
		{Name: "GRASS_GNUPLOT", Value: cfg.Gnuplot},
	}

	vars = append(vars, EnvVar{
		Name: "PATH",
		Value: prependPath(os.Getenv("PATH"),
			filepath.Join(cfg.GisBase, "bin"),
			filepath.Join(cfg.GisBase, "scripts")),
	})

	ldPath := appendPath(os.Getenv("LD_LIBRARY_PATH"), filepath.Join(cfg.GisBase, "lib"))
	vars = append(vars,
		EnvVar{Name: "LD_LIBRARY_PATH", Value: ldPath},
		EnvVar{Name: "GRASS_LD_LIBRARY_PATH", Value: ldPath},
		EnvVar{Name: "MANPATH", Value: appendPath(os.Getenv("MANPATH"), filepath.Join(cfg.GisBase, "man"))},
	)

	return vars
}

func envBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// prependPath puts entries ahead of an existing search path.
func prependPath(existing string, entries ...string) string {
	joined := joinPath(entries)
	if existing == "" {
		return joined
	}
	return joined + string(filepath.ListSeparator) + existing
}

// appendPath puts entries after an existing search path.
func appendPath(existing string, entries ...string) string {
	joined := joinPath(entries)
	if existing == "" {
		return joined
	}
	return existing + string(filepath.ListSeparator) + joined
}

func joinPath(entries []string) string {
	out := ""
	for _, e := range entries {
		if out != "" {
			out += string(filepath.ListSeparator)
		}
		out += e
	}
	return out
}
