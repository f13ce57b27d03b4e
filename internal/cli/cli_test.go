package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestNewApp_RunsWithUsername(t *testing.T) {
	var target string
	var verbose bool
	app := NewApp(func(c *cli.Context) error {
		target = c.Args().First()
		verbose = c.Bool("verbose")
		return nil
	})

	assert.NotPanics(t, func() {
		require.NoError(t, app.Run([]string{"gitrank", "-v", "octocat"}))
	})
	assert.Equal(t, "octocat", target)
	assert.True(t, verbose)
}

func TestNewApp_VersionFlag(t *testing.T) {
	called := false
	app := NewApp(func(c *cli.Context) error {
		called = true
		return nil
	})
	var out bytes.Buffer
	app.Writer = &out

	require.NoError(t, app.Run([]string{"gitrank", "-V"}))
	assert.False(t, called)
	assert.Contains(t, out.String(), "gitrank version v")
}
