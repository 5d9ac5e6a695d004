package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/proxy-deploy/internal/domain/config"
)

// EnvPrefix prefixes every environment variable read through viper
const EnvPrefix = "PROXY_DEPLOY"

// DataDirName is the per-project directory holding the optional config file
const DataDirName = ".proxy-deploy"

// Provider creates RuntimeConfig for Wire dependency injection.
// ctx bounds the chain ID lookup of the selected network.
func Provider(ctx context.Context, v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	// .env must be loaded before any env-backed key is read
	if err := LoadDotEnv(projectRoot); err != nil {
		return nil, err
	}

	foundryConfig, err := LoadFoundryConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load foundry config: %w", err)
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Output:         strings.ToLower(v.GetString("output")),
		Timeout:        v.GetDuration("timeout"),
		ConfirmTimeout: v.GetDuration("confirm_timeout"),
		PrivateKey:     v.GetString("private_key"),
		Build:          v.GetBool("build"),
		FoundryConfig:  foundryConfig,
		Profile:        v.GetString("profile"),
	}

	switch cfg.Output {
	case "text", "json", "yaml":
	default:
		return nil, fmt.Errorf("unsupported output format %q (expected text, json or yaml)", cfg.Output)
	}

	if networkName := v.GetString("network"); networkName != "" {
		resolver := NewNetworkResolver(foundryConfig, v.GetString("rpc_url"))
		network, err := resolver.ResolveNetwork(ctx, networkName)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
		}
		cfg.Network = network
	}

	return cfg, nil
}

// FindProjectRoot walks up from the current directory to find foundry.toml.
// Outside a Foundry project the current directory is the root.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, "foundry.toml")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, DataDirName))

	// Set up environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// The deployer key is also accepted under the conventional unprefixed name
	_ = v.BindEnv("private_key", EnvPrefix+"_PRIVATE_KEY", "PRIVATE_KEY")

	// Set defaults
	v.SetDefault("timeout", "5m")
	v.SetDefault("confirm_timeout", "2m")
	v.SetDefault("output", "text")
	v.SetDefault("profile", "default")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil {
				panic(err)
			}
		})
	}

	return v
}
