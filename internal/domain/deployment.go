package domain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// RecordKey is the env key under which the proxy address is persisted.
const RecordKey = "CONTRACT"

// DeploymentTarget identifies the network a run deploys to.
type DeploymentTarget struct {
	Network string `json:"network" yaml:"network"`
	RPCURL  string `json:"-" yaml:"-"`
	ChainID uint64 `json:"chainId" yaml:"chainId"`
}

// RecordFileName returns the name of the env file scoped to the target network.
func (t DeploymentTarget) RecordFileName() string {
	return fmt.Sprintf(".%s.env", t.Network)
}

// ProxyDeployment is a proxy created by the Deployer.
// It must be confirmed before any call is issued through it.
type ProxyDeployment struct {
	Address              common.Address
	Implementation       common.Address
	ImplementationTxHash common.Hash
	ProxyTxHash          common.Hash
	BlockNumber          uint64

	// ProxyTx is the pending proxy creation, kept for the confirmation wait
	ProxyTx   *types.Transaction
	confirmed bool
}

// MarkConfirmed records that the proxy creation transaction was mined with code at Address.
func (p *ProxyDeployment) MarkConfirmed(blockNumber uint64) {
	p.BlockNumber = blockNumber
	p.confirmed = true
}

// Confirmed reports whether the deployment has been confirmed on chain.
func (p *ProxyDeployment) Confirmed() bool {
	return p != nil && p.confirmed
}

// DeploymentRecord is the key/value pair written to the network env file.
type DeploymentRecord struct {
	Key   string
	Value string
}

// NewDeploymentRecord builds the record for a proxy address.
func NewDeploymentRecord(address common.Address) DeploymentRecord {
	return DeploymentRecord{Key: RecordKey, Value: address.Hex()}
}

// Line renders the record as a single env line without a trailing newline.
func (r DeploymentRecord) Line() string {
	return r.Key + "=" + r.Value
}
