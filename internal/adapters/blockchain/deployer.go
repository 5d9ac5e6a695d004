package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/proxy-deploy/internal/domain"
	"github.com/trebuchet-org/proxy-deploy/internal/domain/config"
	"github.com/trebuchet-org/proxy-deploy/internal/domain/models"
	"github.com/trebuchet-org/proxy-deploy/internal/usecase"
)

// Deployer deploys an implementation and an ERC-1967 proxy pointing at it
type Deployer struct {
	backends       BackendProvider
	signer         *Signer
	confirmTimeout time.Duration
	log            *slog.Logger
}

// NewDeployer creates a new proxy deployer
func NewDeployer(backends BackendProvider, signer *Signer, cfg *config.RuntimeConfig, log *slog.Logger) *Deployer {
	return &Deployer{
		backends:       backends,
		signer:         signer,
		confirmTimeout: cfg.ConfirmTimeout,
		log:            log.With("component", "Deployer"),
	}
}

// ProxyInitializer is called from the proxy constructor when the implementation declares it
const ProxyInitializer = "initialize"

// Deploy creates the implementation, waits for it, then creates the proxy.
// The proxy constructor calls initialize() when the implementation has one.
// The returned deployment is not confirmed.
func (d *Deployer) Deploy(ctx context.Context, implementation, proxy *models.Contract) (*domain.ProxyDeployment, error) {
	backend, err := d.backends.Backend(ctx)
	if err != nil {
		return nil, err
	}
	auth, err := d.signer.TransactOpts(ctx)
	if err != nil {
		return nil, err
	}

	implABI, err := implementation.ParseABI()
	if err != nil {
		return nil, err
	}
	implBytecode, err := implementation.Bytecode()
	if err != nil {
		return nil, err
	}
	proxyABI, err := proxy.ParseABI()
	if err != nil {
		return nil, err
	}
	proxyBytecode, err := proxy.Bytecode()
	if err != nil {
		return nil, err
	}
	initData, err := proxyInitData(implABI)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", implementation.Name, err)
	}

	from, err := d.signer.Address()
	if err != nil {
		return nil, err
	}
	d.log.Debug("deploying implementation", "contract", implementation.String(), "from", from)
	implAddress, implTx, _, err := bind.DeployContract(auth, *implABI, implBytecode, backend)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy implementation %s: %w", implementation.Name, err)
	}
	if _, err := d.waitReceipt(ctx, backend, implTx); err != nil {
		return nil, fmt.Errorf("implementation %s: %w", implementation.Name, err)
	}
	d.log.Debug("implementation deployed", "address", implAddress, "tx", implTx.Hash())

	proxyAddress, proxyTx, _, err := bind.DeployContract(auth, *proxyABI, proxyBytecode, backend, implAddress, initData)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy proxy %s: %w", proxy.Name, err)
	}
	d.log.Debug("proxy submitted", "address", proxyAddress, "tx", proxyTx.Hash(), "initData", len(initData) > 0)

	return &domain.ProxyDeployment{
		Address:              proxyAddress,
		Implementation:       implAddress,
		ImplementationTxHash: implTx.Hash(),
		ProxyTxHash:          proxyTx.Hash(),
		ProxyTx:              proxyTx,
	}, nil
}

// proxyInitData encodes initialize() for the proxy constructor.
// Without an initialize method the proxy is created with empty data.
func proxyInitData(implABI *abi.ABI) ([]byte, error) {
	method, ok := implABI.Methods[ProxyInitializer]
	if !ok {
		return []byte{}, nil
	}
	if len(method.Inputs) > 0 {
		return nil, fmt.Errorf("%s expects %d arguments but the proxy is deployed without initializer arguments",
			method.Sig, len(method.Inputs))
	}
	data, err := implABI.Pack(ProxyInitializer)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", method.Sig, err)
	}
	return data, nil
}

// Confirm waits for the proxy creation to be mined successfully with code at the proxy address
func (d *Deployer) Confirm(ctx context.Context, deployment *domain.ProxyDeployment) error {
	if deployment == nil || deployment.ProxyTx == nil {
		return fmt.Errorf("no pending proxy transaction to confirm")
	}
	backend, err := d.backends.Backend(ctx)
	if err != nil {
		return err
	}

	receipt, err := d.waitReceipt(ctx, backend, deployment.ProxyTx)
	if err != nil {
		return fmt.Errorf("proxy: %w", err)
	}

	code, err := backend.CodeAt(ctx, deployment.Address, nil)
	if err != nil {
		return fmt.Errorf("failed to check code at %s: %w", deployment.Address.Hex(), err)
	}
	if len(code) == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNoCodeAtAddress, deployment.Address.Hex())
	}

	var block uint64
	if receipt.BlockNumber != nil {
		block = receipt.BlockNumber.Uint64()
	}
	deployment.MarkConfirmed(block)
	d.log.Debug("proxy confirmed", "address", deployment.Address, "block", block)
	return nil
}

// waitReceipt waits for tx to be mined and requires a successful status
func (d *Deployer) waitReceipt(ctx context.Context, backend bind.DeployBackend, tx *types.Transaction) (*types.Receipt, error) {
	return waitSuccessful(ctx, backend, tx, d.confirmTimeout)
}

func waitSuccessful(ctx context.Context, backend bind.DeployBackend, tx *types.Transaction, timeout time.Duration) (*types.Receipt, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	receipt, err := bind.WaitMined(ctx, backend, tx)
	if err != nil {
		return nil, fmt.Errorf("waiting for transaction %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransactionReverted, tx.Hash().Hex())
	}
	return receipt, nil
}

var _ usecase.ProxyDeployer = (*Deployer)(nil)
