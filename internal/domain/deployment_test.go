package domain

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestDeploymentRecord(t *testing.T) {
	addr := common.HexToAddress("0xabcdabcdabcdabcdabcdabcdabcdabcdabcdabcd")
	target := DeploymentTarget{Network: "goerli", ChainID: 5}

	record := NewDeploymentRecord(addr)

	assert.Equal(t, ".goerli.env", target.RecordFileName())
	assert.Equal(t, "CONTRACT", record.Key)
	assert.Equal(t, "CONTRACT="+addr.Hex(), record.Line())
}

func TestProxyDeploymentConfirmed(t *testing.T) {
	var missing *ProxyDeployment
	assert.False(t, missing.Confirmed())

	deployment := &ProxyDeployment{}
	assert.False(t, deployment.Confirmed())

	deployment.MarkConfirmed(42)
	assert.True(t, deployment.Confirmed())
	assert.Equal(t, uint64(42), deployment.BlockNumber)
}

func TestErrors(t *testing.T) {
	notFound := ContractNotFoundErr{Name: "SeverBadg", Suggestions: []string{"SeverBadge"}}
	assert.ErrorIs(t, notFound, ErrContractNotFound)
	assert.Contains(t, notFound.Error(), "did you mean")

	stageErr := &StageError{Stage: StageInitializing, Err: ErrTransactionReverted}
	assert.True(t, errors.Is(stageErr, ErrTransactionReverted))
	assert.Equal(t, "initializing failed: transaction reverted", stageErr.Error())
}
