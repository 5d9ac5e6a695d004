package blockchain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/proxy-deploy/internal/domain"
	"github.com/trebuchet-org/proxy-deploy/internal/domain/config"
)

func TestVerifyChainID(t *testing.T) {
	backend := newFakeBackend()

	require.NoError(t, verifyChainID(context.Background(), backend, testChainID))
	require.NoError(t, verifyChainID(context.Background(), backend, 0))
	assert.ErrorIs(t, verifyChainID(context.Background(), backend, 1), domain.ErrChainIDMismatch)
}

func TestClient_NoNetwork(t *testing.T) {
	client := NewClient(&config.RuntimeConfig{}, discardLogger())

	_, err := client.Backend(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--network")
}

func TestSigner(t *testing.T) {
	cfg, from := testConfig(t)

	t.Run("derives the deployer address", func(t *testing.T) {
		addr, err := NewSigner(cfg).Address()
		require.NoError(t, err)
		assert.Equal(t, from, addr)
	})

	t.Run("accepts keys without 0x prefix", func(t *testing.T) {
		c := *cfg
		c.PrivateKey = cfg.PrivateKey[2:]
		opts, err := NewSigner(&c).TransactOpts(context.Background())
		require.NoError(t, err)
		assert.Equal(t, from, opts.From)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := NewSigner(&config.RuntimeConfig{}).TransactOpts(context.Background())
		assert.ErrorIs(t, err, domain.ErrMissingPrivateKey)
	})

	t.Run("malformed key", func(t *testing.T) {
		_, err := NewSigner(&config.RuntimeConfig{PrivateKey: "0xnothex"}).TransactOpts(context.Background())
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrMissingPrivateKey)
	})
}
