package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/stake-deployer/internal/adapters/progress"
	"github.com/trebuchet-org/stake-deployer/internal/usecase"
)

func TestRootCommandTree(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"deploy", "history", "init", "networks", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	deploy, _, err := root.Find([]string{"deploy"})
	require.NoError(t, err)
	for _, flag := range []string{"plan", "artifacts-dir", "confirmation-timeout", "resume", "json"} {
		assert.NotNil(t, deploy.Flags().Lookup(flag), flag)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("network"))
}

func TestNewProgressSink(t *testing.T) {
	root := NewRootCmd()
	deploy, _, err := root.Find([]string{"deploy"})
	require.NoError(t, err)

	assert.IsType(t, &progress.DeployProgress{}, newProgressSink(deploy))

	require.NoError(t, deploy.Flags().Set("json", "true"))
	assert.IsType(t, usecase.NopProgress{}, newProgressSink(deploy))

	networks, _, err := root.Find([]string{"networks"})
	require.NoError(t, err)
	assert.IsType(t, usecase.NopProgress{}, newProgressSink(networks))
}

func TestVersionCmd(t *testing.T) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "stake-deployer version dev")
}
