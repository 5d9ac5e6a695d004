package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrContractNotFound is returned when a contract artifact can't be found
	ErrContractNotFound = errors.New("contract not found")

	// ErrNetworkNotConfigured is returned when no RPC endpoint is known for a network
	ErrNetworkNotConfigured = errors.New("network not configured")

	// ErrChainIDMismatch is returned when the node reports an unexpected chain ID
	ErrChainIDMismatch = errors.New("chain ID mismatch")

	// ErrMissingPrivateKey is returned when no deployer key is configured
	ErrMissingPrivateKey = errors.New("missing deployer private key")

	// ErrTransactionReverted is returned when a mined transaction has a failed status
	ErrTransactionReverted = errors.New("transaction reverted")

	// ErrNoCodeAtAddress is returned when a confirmed deployment left no code behind
	ErrNoCodeAtAddress = errors.New("no code at address")

	// ErrNotConfirmed is returned when a proxy is used before its deployment was confirmed
	ErrNotConfirmed = errors.New("proxy deployment not confirmed")

	// ErrImplementationNotFound is returned when the ERC-1967 implementation slot is empty
	ErrImplementationNotFound = errors.New("implementation address not found")

	// ErrMethodNotFound is returned when the initializer method is missing from the ABI
	ErrMethodNotFound = errors.New("method not found in ABI")

	// ErrAborted is returned when the user declines the deployment prompt
	ErrAborted = errors.New("deployment aborted")
)

// ContractNotFoundErr reports a missing artifact together with close matches.
type ContractNotFoundErr struct {
	Name        string
	Suggestions []string
}

func (e ContractNotFoundErr) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("artifact for contract %q not found (did you run forge build?)", e.Name)
	}
	return fmt.Sprintf("artifact for contract %q not found, did you mean:\n  - %s",
		e.Name, strings.Join(e.Suggestions, "\n  - "))
}

func (e ContractNotFoundErr) Unwrap() error {
	return ErrContractNotFound
}

// StageError wraps the failure that moved the pipeline into the Failed state.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", strings.ToLower(string(e.Stage)), e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
