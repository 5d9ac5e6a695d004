package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/proxy-deploy/internal/domain/config"
)

// LoadDotEnv loads .env and .env.local from the project root.
// Variables already present in the process environment win.
func LoadDotEnv(projectRoot string) error {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	return nil
}

// LoadFoundryConfig parses foundry.toml at the project root.
// RPC endpoints are kept raw; they are expanded when a network is resolved.
// A project without foundry.toml yields an empty configuration.
func LoadFoundryConfig(projectRoot string) (*config.FoundryConfig, error) {
	cfg := &config.FoundryConfig{
		Profile:      map[string]config.ProfileConfig{},
		RpcEndpoints: map[string]string{},
		Etherscan:    map[string]config.EtherscanConfig{},
	}

	foundryPath := filepath.Join(projectRoot, "foundry.toml")
	if _, err := os.Stat(foundryPath); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(foundryPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse foundry.toml: %w", err)
	}

	for network, etherscan := range cfg.Etherscan {
		etherscan.URL = os.ExpandEnv(etherscan.URL)
		etherscan.Key = os.ExpandEnv(etherscan.Key)
		cfg.Etherscan[network] = etherscan
	}

	return cfg, nil
}
