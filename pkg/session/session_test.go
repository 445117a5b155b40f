package session_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgoizueta/grass-gis/pkg/config"
	"github.com/jgoizueta/grass-gis/pkg/runner"
	"github.com/jgoizueta/grass-gis/pkg/session"
)

// sessionVars are the environment variables a session mutates.
var sessionVars = []string{
	"GISBASE", "GISRC", "GRASS_VERSION", "GRASS_MESSAGE_FORMAT",
	"GRASS_TRUECOLOR", "GRASS_TRANSPARENT", "GRASS_PNG_AUTO_WRITE",
	"GRASS_GNUPLOT", "PATH", "LD_LIBRARY_PATH", "GRASS_LD_LIBRARY_PATH",
	"MANPATH",
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.GisBase = "/usr/local/grass-7.0.0"
	cfg.Location = "nc_spm"
	cfg.Mapset = "user1"
	cfg.Echo = config.EchoNone
	return cfg
}

// snapshotEnv captures current value-or-absence for the session variables.
func snapshotEnv() map[string]*string {
	snap := make(map[string]*string, len(sessionVars))
	for _, name := range sessionVars {
		if v, ok := os.LookupEnv(name); ok {
			value := v
			snap[name] = &value
		} else {
			snap[name] = nil
		}
	}
	return snap
}

func assertEnvEquals(t *testing.T, want map[string]*string) {
	t.Helper()
	for _, name := range sessionVars {
		got, ok := os.LookupEnv(name)
		if want[name] == nil {
			assert.False(t, ok, "%s should be absent", name)
		} else {
			require.True(t, ok, "%s should be present", name)
			assert.Equal(t, *want[name], got, "%s should be restored", name)
		}
	}
}

type fakeCall struct {
	name string
	args []string
	dir  string
}

// fakeRunner records invocations and replays a canned result.
type fakeRunner struct {
	calls  []fakeCall
	result runner.Result
	err    error
}

func (f *fakeRunner) Run(_ context.Context, name string, args []string, opts runner.Options) (runner.Result, error) {
	f.calls = append(f.calls, fakeCall{name: name, args: args, dir: opts.Dir})
	return f.result, f.err
}

func TestSessionEnvironmentMutationAndRestore(t *testing.T) {
	t.Setenv("GRASS_VERSION", "prior-version")
	t.Setenv("LD_LIBRARY_PATH", "/prior/lib")
	require.NoError(t, os.Unsetenv("GISBASE"))
	require.NoError(t, os.Unsetenv("GISRC"))

	before := snapshotEnv()
	cfg := testConfig(t)

	err := session.Session(cfg, func(c *session.Context) error {
		assert.Equal(t, "/usr/local/grass-7.0.0", os.Getenv("GISBASE"))
		assert.Equal(t, "7.0.0", os.Getenv("GRASS_VERSION"))
		assert.Equal(t, "plain", os.Getenv("GRASS_MESSAGE_FORMAT"))
		assert.Equal(t, "TRUE", os.Getenv("GRASS_TRUECOLOR"))

		// PATH is extended with the toolsuite directories, not replaced.
		path := os.Getenv("PATH")
		assert.True(t, strings.HasPrefix(path,
			filepath.Join(cfg.GisBase, "bin")+string(filepath.ListSeparator)+
				filepath.Join(cfg.GisBase, "scripts")))
		assert.Contains(t, path, *before["PATH"])

		// LD_LIBRARY_PATH keeps the prior entries and gains the lib dir.
		ld := os.Getenv("LD_LIBRARY_PATH")
		assert.Contains(t, ld, "/prior/lib")
		assert.Contains(t, ld, filepath.Join(cfg.GisBase, "lib"))
		assert.Equal(t, ld, os.Getenv("GRASS_LD_LIBRARY_PATH"))

		return nil
	})
	require.NoError(t, err)

	assertEnvEquals(t, before)
}

func TestSessionRestoresEnvironmentOnBlockError(t *testing.T) {
	before := snapshotEnv()

	err := session.Session(testConfig(t), func(c *session.Context) error {
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	assertEnvEquals(t, before)
}

func TestResourceFileLifecycle(t *testing.T) {
	cfg := testConfig(t)
	cfg.GUI = "text"

	c, err := session.Start(cfg)
	require.NoError(t, err)

	gisrc := c.GisrcPath()
	require.NotEmpty(t, gisrc)
	assert.Equal(t, gisrc, os.Getenv("GISRC"))

	content, err := os.ReadFile(gisrc)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	assert.Equal(t, []string{
		"GISDBASE: " + c.Config().GisDBase,
		"LOCATION_NAME: nc_spm",
		"MAPSET: user1",
		"GRASS_GUI: text",
	}, lines)

	require.NoError(t, c.Close())
	assert.NoFileExists(t, gisrc)
}

func TestCloseIsIdempotent(t *testing.T) {
	c, err := session.Start(testConfig(t))
	require.NoError(t, err)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
}

func TestCloseToleratesMissingResourceFile(t *testing.T) {
	c, err := session.Start(testConfig(t))
	require.NoError(t, err)

	require.NoError(t, os.Remove(c.GisrcPath()))
	assert.NoError(t, c.Close())
}

func TestStartRejectsInvalidConfig(t *testing.T) {
	_, err := session.Start(config.Config{Location: "nc_spm"})
	require.Error(t, err)

	_, err = session.Start(config.Config{GisBase: "/opt/grass"})
	require.Error(t, err)
}

func TestLocals(t *testing.T) {
	cfg := testConfig(t)
	cfg.Locals = map[string]interface{}{
		"elevation": "elev_ned30m",
		"res":       30,
	}

	err := session.Session(cfg, func(c *session.Context) error {
		v, ok := c.Local("elevation")
		require.True(t, ok)
		assert.Equal(t, "elev_ned30m", v)

		_, ok = c.Local("missing")
		assert.False(t, ok)
		return nil
	})
	require.NoError(t, err)
}
