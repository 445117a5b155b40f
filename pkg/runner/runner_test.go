package runner_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	grasserr "github.com/jgoizueta/grass-gis/pkg/errors"
	"github.com/jgoizueta/grass-gis/pkg/runner"
)

func TestRunCapturesOutput(t *testing.T) {
	r := runner.NewExec()

	res, err := r.Run(context.Background(), "sh",
		[]string{"-c", "echo out; echo err >&2"}, runner.Options{})
	require.NoError(t, err)

	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
	assert.Equal(t, 0, res.ExitCode)
	assert.Greater(t, res.Duration.Nanoseconds(), int64(0))
}

func TestRunNonZeroExitIsNotAnError(t *testing.T) {
	r := runner.NewExec()

	res, err := r.Run(context.Background(), "sh", []string{"-c", "exit 3"}, runner.Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
}

func TestRunLaunchFailure(t *testing.T) {
	r := runner.NewExec()

	_, err := r.Run(context.Background(), "definitely.not.a.real.tool", nil, runner.Options{})
	require.Error(t, err)
	assert.True(t, grasserr.IsErrorCode(err, grasserr.ErrLaunchFailed))
}

func TestRunWorkingDirectory(t *testing.T) {
	r := runner.NewExec()
	dir := t.TempDir()

	res, err := r.Run(context.Background(), "pwd", nil, runner.Options{Dir: dir})
	require.NoError(t, err)
	// Resolve symlinks (e.g. /tmp on macOS) before comparing.
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Contains(t, []string{dir + "\n", resolved + "\n"}, res.Stdout)
}

func TestRunMissingWorkingDirectory(t *testing.T) {
	r := runner.NewExec()

	_, err := r.Run(context.Background(), "pwd", nil,
		runner.Options{Dir: "/definitely/not/a/dir"})
	require.Error(t, err)
	assert.True(t, grasserr.IsErrorCode(err, grasserr.ErrLaunchFailed))
}

func TestRunExtraEnvironment(t *testing.T) {
	r := runner.NewExec()

	res, err := r.Run(context.Background(), "sh",
		[]string{"-c", "printf %s \"$GRASS_TEST_VAR\""},
		runner.Options{Env: []string{"GRASS_TEST_VAR=hello"}})
	require.NoError(t, err)
	assert.Equal(t, "hello", res.Stdout)
}

func TestRunStdin(t *testing.T) {
	r := runner.NewExec()

	res, err := r.Run(context.Background(), "cat", nil,
		runner.Options{Stdin: "from stdin"})
	require.NoError(t, err)
	assert.Equal(t, "from stdin", res.Stdout)
}
