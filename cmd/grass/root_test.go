package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeSessionConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.toml")
	content := `
gisbase = "/usr/local/grass-7.0.0"
location = "nc_spm"
mapset = "user1"
echo = "none"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestGenconfigCommand(t *testing.T) {
	out, err := executeCommand(t, "genconfig")
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, toml.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, "/usr/local/grass-7.0.0", parsed["gisbase"])
	assert.Equal(t, "raise", parsed["errors"])
	assert.Equal(t, "commands", parsed["echo"])
}

func TestGenconfigToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toml")
	out, err := executeCommand(t, "genconfig", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote ")
	assert.FileExists(t, path)
	genconfigOutput = ""
}

func TestEnvCommand(t *testing.T) {
	cfgPath := writeSessionConfig(t)

	out, err := executeCommand(t, "env", "--config", cfgPath)
	require.NoError(t, err)

	assert.Contains(t, out, "GISBASE=/usr/local/grass-7.0.0")
	assert.Contains(t, out, "GRASS_VERSION=7.0.0")
	assert.NotContains(t, out, "GISRC=")
	cfgFile = ""
}

func TestEnvCommandRequiresConfig(t *testing.T) {
	_, err := executeCommand(t, "env", "--config", "")
	require.Error(t, err)
	cfgFile = ""
}

func TestRunCommandDryRun(t *testing.T) {
	cfgPath := writeSessionConfig(t)

	_, err := executeCommand(t, "run", "--config", cfgPath, "--dry-run",
		"r.resamp.stats", "input=map1", "output=map2")
	require.NoError(t, err)
	cfgFile = ""
	dryRun = false
}

func TestRunCommandRejectsBadCommandLine(t *testing.T) {
	cfgPath := writeSessionConfig(t)

	_, err := executeCommand(t, "run", "--config", cfgPath, "--dry-run",
		"--", "-p", "g.region")
	require.Error(t, err)
	cfgFile = ""
	dryRun = false
}

func TestReadCommandLines(t *testing.T) {
	in := strings.NewReader(`
# a comment
g.region -p

r.info map=elev
`)
	lines, err := readCommandLines(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"g.region -p", "r.info map=elev"}, lines)
}

func TestExecCommandDryRun(t *testing.T) {
	cfgPath := writeSessionConfig(t)
	script := filepath.Join(t.TempDir(), "script.grass")
	require.NoError(t, os.WriteFile(script, []byte("g.region -p\nr.info map=elev\n"), 0644))

	out, err := executeCommand(t, "exec", "--config", cfgPath, "--dry-run", "--summary", script)
	require.NoError(t, err)
	assert.Contains(t, out, "g.region -p")
	assert.Contains(t, out, "r.info map=elev")
	cfgFile = ""
	dryRun = false
	execSummary = false
}
