package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/proxy-deploy/internal/domain"
	"github.com/trebuchet-org/proxy-deploy/internal/domain/config"
)

// Backend is the part of the node API the chain adapters use
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	StorageAt(ctx context.Context, account common.Address, key common.Hash, blockNumber *big.Int) ([]byte, error)
}

// BackendProvider hands out a connected backend
type BackendProvider interface {
	Backend(ctx context.Context) (Backend, error)
}

// Client dials the target network on first use and verifies its chain ID
type Client struct {
	network *config.Network
	log     *slog.Logger

	mu     sync.Mutex
	client *ethclient.Client
}

// NewClient creates a client for the configured network
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) *Client {
	return &Client{
		network: cfg.Network,
		log:     log.With("component", "Client"),
	}
}

// Backend connects to the network if needed
func (c *Client) Backend(ctx context.Context) (Backend, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}
	if c.network == nil {
		return nil, fmt.Errorf("no network selected, --network flag is required")
	}

	client, err := ethclient.DialContext(ctx, c.network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	if err := verifyChainID(ctx, client, c.network.ChainID); err != nil {
		client.Close()
		return nil, err
	}

	c.log.Debug("connected", "network", c.network.Name, "chainId", c.network.ChainID)
	c.client = client
	return client, nil
}

// Close releases the RPC connection
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		c.client.Close()
		c.client = nil
	}
}

// verifyChainID checks the node serves the expected chain; zero accepts any chain
func verifyChainID(ctx context.Context, backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
}, expected uint64) error {
	networkChainID, err := backend.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain ID: %w", err)
	}
	if expected != 0 && networkChainID.Uint64() != expected {
		return fmt.Errorf("%w: expected %d, got %d", domain.ErrChainIDMismatch, expected, networkChainID.Uint64())
	}
	return nil
}
