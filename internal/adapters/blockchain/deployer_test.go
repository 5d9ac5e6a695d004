package blockchain

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/proxy-deploy/internal/domain"
	"github.com/trebuchet-org/proxy-deploy/internal/domain/config"
)

func TestDeployer_DeployAndConfirm(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend()
	cfg, from := testConfig(t)
	deployer := NewDeployer(staticProvider{backend}, NewSigner(cfg), cfg, discardLogger())

	deployment, err := deployer.Deploy(ctx, testContract("Counter", counterABI), testContract("ERC1967Proxy", proxyABI))
	require.NoError(t, err)

	sent := backend.transactions()
	require.Len(t, sent, 2)
	assert.Nil(t, sent[0].To(), "implementation is a contract creation")
	assert.Nil(t, sent[1].To(), "proxy is a contract creation")

	assert.Equal(t, crypto.CreateAddress(from, 0), deployment.Implementation)
	assert.Equal(t, crypto.CreateAddress(from, 1), deployment.Address)
	assert.Equal(t, sent[0].Hash(), deployment.ImplementationTxHash)
	assert.Equal(t, sent[1].Hash(), deployment.ProxyTxHash)
	assert.False(t, deployment.Confirmed())

	// Without initialize the proxy constructor receives empty init data
	data := sent[1].Data()
	assert.Contains(t, string(data), string(common.LeftPadBytes(deployment.Implementation.Bytes(), 32)))
	assert.Equal(t, make([]byte, 32), data[len(data)-32:], "init data length is zero")

	require.NoError(t, deployer.Confirm(ctx, deployment))
	assert.True(t, deployment.Confirmed())
	assert.Equal(t, uint64(2), deployment.BlockNumber)
}

func TestDeployer_ProxyInitData(t *testing.T) {
	t.Run("argument-less initialize runs in the proxy constructor", func(t *testing.T) {
		backend := newFakeBackend()
		cfg, _ := testConfig(t)
		deployer := NewDeployer(staticProvider{backend}, NewSigner(cfg), cfg, discardLogger())

		_, err := deployer.Deploy(context.Background(), testContract("Counter", initializableABI), testContract("ERC1967Proxy", proxyABI))
		require.NoError(t, err)

		sent := backend.transactions()
		require.Len(t, sent, 2)
		data := sent[1].Data()
		require.GreaterOrEqual(t, len(data), 64)

		// bytes encoding: length word of 4, then the selector right padded
		selector := crypto.Keccak256([]byte("initialize()"))[:4]
		assert.Equal(t, common.LeftPadBytes([]byte{4}, 32), data[len(data)-64:len(data)-32])
		assert.Equal(t, common.RightPadBytes(selector, 32), data[len(data)-32:])
		assert.Equal(t, []byte{0x81, 0x29, 0xfc, 0x1c}, selector)
	})

	t.Run("initialize with arguments is rejected before sending", func(t *testing.T) {
		backend := newFakeBackend()
		cfg, _ := testConfig(t)
		deployer := NewDeployer(staticProvider{backend}, NewSigner(cfg), cfg, discardLogger())

		_, err := deployer.Deploy(context.Background(), testContract("Counter", implementationABI), testContract("ERC1967Proxy", proxyABI))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "initialize(address)")
		assert.Empty(t, backend.transactions())
	})
}

func TestDeployer_ImplementationReverted(t *testing.T) {
	backend := newFakeBackend()
	backend.reverted[0] = true
	cfg, _ := testConfig(t)
	deployer := NewDeployer(staticProvider{backend}, NewSigner(cfg), cfg, discardLogger())

	_, err := deployer.Deploy(context.Background(), testContract("Counter", counterABI), testContract("ERC1967Proxy", proxyABI))

	require.ErrorIs(t, err, domain.ErrTransactionReverted)
	assert.Len(t, backend.transactions(), 1, "proxy is never sent")
}

func TestDeployer_ConfirmFailures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*fakeBackend)
		wantErr error
	}{
		{
			name:    "proxy creation reverted",
			setup:   func(b *fakeBackend) { b.reverted[1] = true },
			wantErr: domain.ErrTransactionReverted,
		},
		{
			name:    "no code at proxy",
			setup:   func(b *fakeBackend) { b.noCode = true },
			wantErr: domain.ErrNoCodeAtAddress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			backend := newFakeBackend()
			tt.setup(backend)
			cfg, _ := testConfig(t)
			deployer := NewDeployer(staticProvider{backend}, NewSigner(cfg), cfg, discardLogger())

			deployment, err := deployer.Deploy(ctx, testContract("Counter", counterABI), testContract("ERC1967Proxy", proxyABI))
			require.NoError(t, err)

			err = deployer.Confirm(ctx, deployment)
			require.ErrorIs(t, err, tt.wantErr)
			assert.False(t, deployment.Confirmed())
		})
	}
}

func TestDeployer_ConfirmWithoutTransaction(t *testing.T) {
	cfg, _ := testConfig(t)
	deployer := NewDeployer(staticProvider{newFakeBackend()}, NewSigner(cfg), cfg, discardLogger())

	err := deployer.Confirm(context.Background(), &domain.ProxyDeployment{})

	assert.Error(t, err)
}

func TestDeployer_MissingPrivateKey(t *testing.T) {
	backend := newFakeBackend()
	cfg := &config.RuntimeConfig{Network: &config.Network{ChainID: testChainID}}
	deployer := NewDeployer(staticProvider{backend}, NewSigner(cfg), cfg, discardLogger())

	_, err := deployer.Deploy(context.Background(), testContract("Counter", counterABI), testContract("ERC1967Proxy", proxyABI))

	require.ErrorIs(t, err, domain.ErrMissingPrivateKey)
	assert.Empty(t, backend.transactions())
}

func TestDeployer_UnlinkedLibraries(t *testing.T) {
	backend := newFakeBackend()
	cfg, _ := testConfig(t)
	deployer := NewDeployer(staticProvider{backend}, NewSigner(cfg), cfg, discardLogger())
	impl := testContract("Counter", counterABI)
	impl.Artifact.Bytecode.LinkReferences = map[string]any{"src/Lib.sol": map[string]any{}}

	_, err := deployer.Deploy(context.Background(), impl, testContract("ERC1967Proxy", proxyABI))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "linking")
	assert.Empty(t, backend.transactions())
}
