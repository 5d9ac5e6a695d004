package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProject(t *testing.T, foundry string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "foundry.toml"), []byte(foundry), 0644))
	return dir
}

func TestProvider(t *testing.T) {
	t.Run("defaults without network", func(t *testing.T) {
		root := writeProject(t, "[profile.default]\nout = \"out\"\n")

		cfg, err := Provider(context.Background(), SetupViper(root, nil))

		require.NoError(t, err)
		assert.Equal(t, root, cfg.ProjectRoot)
		assert.Equal(t, 5*time.Minute, cfg.Timeout)
		assert.Equal(t, 2*time.Minute, cfg.ConfirmTimeout)
		assert.Equal(t, "text", cfg.Output)
		assert.Nil(t, cfg.Network)
	})

	t.Run("resolves network through foundry.toml", func(t *testing.T) {
		server := newChainIDServer(t, "0x5")
		root := writeProject(t, "[rpc_endpoints]\ngoerli = \"${GOERLI_RPC_URL}\"\n")
		t.Setenv("GOERLI_RPC_URL", server.URL)

		v := SetupViper(root, nil)
		v.Set("network", "goerli")
		cfg, err := Provider(context.Background(), v)

		require.NoError(t, err)
		require.NotNil(t, cfg.Network)
		assert.Equal(t, "goerli", cfg.Network.Name)
		assert.Equal(t, uint64(5), cfg.Network.ChainID)
		assert.Equal(t, server.URL, cfg.Network.RPCURL)
	})

	t.Run("reads private key from .env", func(t *testing.T) {
		root := writeProject(t, "")
		require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("PRIVATE_KEY=0xdeadbeef\n"), 0644))
		t.Setenv("PRIVATE_KEY", "")
		os.Unsetenv("PRIVATE_KEY")

		cfg, err := Provider(context.Background(), SetupViper(root, nil))

		require.NoError(t, err)
		assert.Equal(t, "0xdeadbeef", cfg.PrivateKey)
	})

	t.Run("prefixed env wins", func(t *testing.T) {
		root := writeProject(t, "")
		t.Setenv("PRIVATE_KEY", "0x01")
		t.Setenv("PROXY_DEPLOY_PRIVATE_KEY", "0x02")

		cfg, err := Provider(context.Background(), SetupViper(root, nil))

		require.NoError(t, err)
		assert.Equal(t, "0x02", cfg.PrivateKey)
	})

	t.Run("binds command flags", func(t *testing.T) {
		root := writeProject(t, "")
		cmd := &cobra.Command{Use: "deploy"}
		cmd.Flags().Bool("non-interactive", false, "")
		cmd.Flags().String("output", "text", "")
		require.NoError(t, cmd.Flags().Parse([]string{"--non-interactive", "--output", "JSON"}))

		cfg, err := Provider(context.Background(), SetupViper(root, cmd))

		require.NoError(t, err)
		assert.True(t, cfg.NonInteractive)
		assert.Equal(t, "json", cfg.Output)
	})

	t.Run("rejects unknown output", func(t *testing.T) {
		root := writeProject(t, "")
		v := SetupViper(root, nil)
		v.Set("output", "xml")

		_, err := Provider(context.Background(), v)

		assert.Error(t, err)
	})

	t.Run("unresolvable network", func(t *testing.T) {
		root := writeProject(t, "")
		v := SetupViper(root, nil)
		v.Set("network", "nowhere")

		_, err := Provider(context.Background(), v)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "nowhere")
	})

	t.Run("network lookup follows the command context", func(t *testing.T) {
		server := newChainIDServer(t, "0x7a69")
		root := writeProject(t, "[rpc_endpoints]\nlocal = \""+server.URL+"\"\n")
		v := SetupViper(root, nil)
		v.Set("network", "local")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Provider(ctx, v)

		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	})
}

func TestFindProjectRoot(t *testing.T) {
	root := writeProject(t, "")
	nested := filepath.Join(root, "script", "deploy")
	require.NoError(t, os.MkdirAll(nested, 0755))
	chdirForTest(t, nested)

	found, err := FindProjectRoot()

	require.NoError(t, err)
	resolvedRoot, _ := filepath.EvalSymlinks(root)
	resolvedFound, _ := filepath.EvalSymlinks(found)
	assert.Equal(t, resolvedRoot, resolvedFound)
}

// chdirForTest mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
