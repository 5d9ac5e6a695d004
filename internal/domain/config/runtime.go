package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string

	// Target network, resolved from --network and foundry.toml
	Network *Network

	// Execution settings
	Debug          bool
	NonInteractive bool
	Output         string // text, json or yaml
	Timeout        time.Duration
	ConfirmTimeout time.Duration

	// Deployment settings
	PrivateKey string
	Build      bool

	// Resolved configurations
	FoundryConfig *FoundryConfig
	Profile       string
}

// Network represents network configuration
type Network struct {
	ChainID     uint64 `json:"chainId"`
	Name        string `json:"name"`
	RPCURL      string `json:"rpcUrl"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
}

// OutDir returns the artifact directory of the active foundry profile.
func (c *RuntimeConfig) OutDir() string {
	if c.FoundryConfig != nil {
		if profile, ok := c.FoundryConfig.Profile[c.Profile]; ok && profile.OutPath != "" {
			return profile.OutPath
		}
	}
	return "out"
}
