package config

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/samber/lo"
	"github.com/trebuchet-org/proxy-deploy/internal/domain"
	"github.com/trebuchet-org/proxy-deploy/internal/domain/config"
)

// ChainIDFetcher queries the chain ID served by an RPC endpoint
type ChainIDFetcher func(ctx context.Context, rpcURL string) (uint64, error)

// NetworkResolver resolves network names to configurations
type NetworkResolver struct {
	foundryConfig *config.FoundryConfig
	rpcOverride   string
	fetchChainID  ChainIDFetcher
}

// NewNetworkResolver creates a new network resolver.
// A non-empty rpcOverride is used for whichever network is resolved.
func NewNetworkResolver(foundryConfig *config.FoundryConfig, rpcOverride string) *NetworkResolver {
	return &NetworkResolver{
		foundryConfig: foundryConfig,
		rpcOverride:   rpcOverride,
		fetchChainID:  FetchChainID,
	}
}

// WithChainIDFetcher replaces the function used to query chain IDs
func (r *NetworkResolver) WithChainIDFetcher(fetch ChainIDFetcher) *NetworkResolver {
	r.fetchChainID = fetch
	return r
}

// GetNetworks returns the network names configured in foundry.toml
func (r *NetworkResolver) GetNetworks(ctx context.Context) []string {
	names := lo.Keys(r.foundryConfig.RpcEndpoints)
	slices.Sort(names)
	return names
}

// ResolveNetwork resolves a network name to its configuration
func (r *NetworkResolver) ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error) {
	rpcURL, err := r.rpcURL(networkName)
	if err != nil {
		return nil, err
	}

	chainID, err := r.fetchChainID(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chain ID for network %s: %w", networkName, err)
	}

	return &config.Network{
		Name:        networkName,
		RPCURL:      rpcURL,
		ChainID:     chainID,
		ExplorerURL: r.getExplorerURL(networkName, chainID),
	}, nil
}

// rpcURL picks the endpoint: explicit override, then foundry.toml, then <NETWORK>_RPC_URL.
func (r *NetworkResolver) rpcURL(networkName string) (string, error) {
	if r.rpcOverride != "" {
		return r.rpcOverride, nil
	}
	if raw, ok := r.foundryConfig.RpcEndpoints[networkName]; ok {
		return ExpandRPCURL(networkName, raw)
	}
	if url := os.Getenv(GenerateEnvVarName(networkName)); url != "" {
		return url, nil
	}
	return "", fmt.Errorf("%w: '%s' not found in foundry.toml [rpc_endpoints] and %s is not set",
		domain.ErrNetworkNotConfigured, networkName, GenerateEnvVarName(networkName))
}

// FetchChainID dials the endpoint and asks for eth_chainId
func FetchChainID(ctx context.Context, rpcURL string) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}
	return chainID.Uint64(), nil
}

// getExplorerURL returns the explorer URL for a network
func (r *NetworkResolver) getExplorerURL(networkName string, chainID uint64) string {
	if etherscan, exists := r.foundryConfig.Etherscan[networkName]; exists && etherscan.URL != "" {
		return etherscan.URL
	}

	switch chainID {
	case 1:
		return "https://etherscan.io"
	case 5:
		return "https://goerli.etherscan.io"
	case 11155111:
		return "https://sepolia.etherscan.io"
	case 10:
		return "https://optimistic.etherscan.io"
	case 137:
		return "https://polygonscan.com"
	case 8453:
		return "https://basescan.org"
	case 42161:
		return "https://arbiscan.io"
	case 42220:
		return "https://celoscan.io"
	default:
		return ""
	}
}
