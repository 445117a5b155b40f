package session

import (
	"fmt"
	"os"
	"strings"

	"github.com/jgoizueta/grass-gis/pkg/config"
	"github.com/jgoizueta/grass-gis/pkg/errors"
)

// writeGisrc creates the short-lived GISRC resource file: colon-separated
// key/value lines identifying the data directory, working location, mapset
// and GUI backend. The file lives for the duration of the session.
func writeGisrc(cfg config.Config) (string, error) {
	f, err := os.CreateTemp("", "gisrc")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrResourceFile, "cannot create resource file")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "GISDBASE: %s\n", cfg.GisDBase)
	fmt.Fprintf(&b, "LOCATION_NAME: %s\n", cfg.Location)
	fmt.Fprintf(&b, "MAPSET: %s\n", cfg.Mapset)
	if cfg.GUI != "" {
		fmt.Fprintf(&b, "GRASS_GUI: %s\n", cfg.GUI)
	}

	if _, err := f.WriteString(b.String()); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", errors.Wrap(err, errors.ErrResourceFile, "cannot write resource file")
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", errors.Wrap(err, errors.ErrResourceFile, "cannot close resource file")
	}
	return f.Name(), nil
}
