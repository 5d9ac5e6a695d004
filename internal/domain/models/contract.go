package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Contract represents a compiled contract resolved from its artifact
type Contract struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	ArtifactPath string    `json:"artifactPath,omitempty"`
	Artifact     *Artifact `json:"artifact,omitempty"`
}

// String formats the contract as path:name
func (c *Contract) String() string {
	if c.Path == "" {
		return c.Name
	}
	return fmt.Sprintf("%s:%s", c.Path, c.Name)
}

// ParseABI parses the artifact ABI
func (c *Contract) ParseABI() (*abi.ABI, error) {
	if c.Artifact == nil || len(c.Artifact.ABI) == 0 {
		return nil, fmt.Errorf("contract %s has no ABI", c.Name)
	}
	parsed, err := abi.JSON(strings.NewReader(string(c.Artifact.ABI)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI for %s: %w", c.Name, err)
	}
	return &parsed, nil
}

// Bytecode decodes the creation bytecode of the artifact
func (c *Contract) Bytecode() ([]byte, error) {
	if c.Artifact == nil {
		return nil, fmt.Errorf("contract %s has no artifact", c.Name)
	}
	object := c.Artifact.Bytecode.Object
	if object == "" || object == "0x" {
		return nil, fmt.Errorf("contract %s has no creation bytecode (abstract or interface?)", c.Name)
	}
	if len(c.Artifact.Bytecode.LinkReferences) > 0 {
		return nil, fmt.Errorf("contract %s requires library linking, which is not supported", c.Name)
	}
	return common.FromHex(object), nil
}

// BytecodeObject represents bytecode information in a Foundry artifact
type BytecodeObject struct {
	Object         string         `json:"object"`
	SourceMap      string         `json:"sourceMap"`
	LinkReferences map[string]any `json:"linkReferences"`
}

// Artifact represents a Foundry compilation artifact
type Artifact struct {
	ABI      json.RawMessage  `json:"abi"`
	Bytecode BytecodeObject   `json:"bytecode"`
	Metadata ArtifactMetadata `json:"metadata"`
}

// ArtifactMetadata represents the metadata section of a Foundry artifact
type ArtifactMetadata struct {
	Compiler struct {
		Version string `json:"version"`
	} `json:"compiler"`
	Language string `json:"language"`
	Settings struct {
		CompilationTarget map[string]string `json:"compilationTarget"`
	} `json:"settings"`
}
