package usecase

import (
	"context"
	"sort"

	"github.com/trebuchet-org/proxy-deploy/internal/domain/config"
)

// NetworkInfo pairs a configured network with the outcome of resolving it
type NetworkInfo struct {
	Name    string
	Network *config.Network
	Error   error
}

// ListNetworksResult contains every network from foundry.toml
type ListNetworksResult struct {
	Networks []NetworkInfo
}

// ListNetworks lists the deployable networks
type ListNetworks struct {
	resolver NetworkResolver
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(resolver NetworkResolver) *ListNetworks {
	return &ListNetworks{resolver: resolver}
}

// Run resolves each configured network. Unreachable networks are reported, not fatal.
func (uc *ListNetworks) Run(ctx context.Context) (*ListNetworksResult, error) {
	names := uc.resolver.GetNetworks(ctx)
	sort.Strings(names)

	result := &ListNetworksResult{}
	for _, name := range names {
		network, err := uc.resolver.ResolveNetwork(ctx, name)
		result.Networks = append(result.Networks, NetworkInfo{
			Name:    name,
			Network: network,
			Error:   err,
		})
	}
	return result, nil
}
