package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/proxy-deploy/internal/domain"
	"github.com/trebuchet-org/proxy-deploy/internal/domain/config"
	"github.com/trebuchet-org/proxy-deploy/internal/domain/models"
	"github.com/trebuchet-org/proxy-deploy/internal/usecase"
)

// Initializer calls the post-deploy initializer through a proxy
type Initializer struct {
	backends       BackendProvider
	signer         *Signer
	confirmTimeout time.Duration
	log            *slog.Logger
}

// NewInitializer creates a new proxy initializer
func NewInitializer(backends BackendProvider, signer *Signer, cfg *config.RuntimeConfig, log *slog.Logger) *Initializer {
	return &Initializer{
		backends:       backends,
		signer:         signer,
		confirmTimeout: cfg.ConfirmTimeout,
		log:            log.With("component", "Initializer"),
	}
}

// Initialize transacts method on the proxy using the implementation ABI and waits for success
func (i *Initializer) Initialize(ctx context.Context, deployment *domain.ProxyDeployment, implementation *models.Contract, method string) (common.Hash, error) {
	if !deployment.Confirmed() {
		return common.Hash{}, domain.ErrNotConfirmed
	}

	implABI, err := implementation.ParseABI()
	if err != nil {
		return common.Hash{}, err
	}
	m, ok := implABI.Methods[method]
	if !ok {
		return common.Hash{}, fmt.Errorf("%w: %s.%s", domain.ErrMethodNotFound, implementation.Name, method)
	}
	if len(m.Inputs) > 0 {
		return common.Hash{}, fmt.Errorf("initializer %s.%s takes %d arguments, only argument-less initializers are supported",
			implementation.Name, method, len(m.Inputs))
	}

	backend, err := i.backends.Backend(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	auth, err := i.signer.TransactOpts(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	contract := bind.NewBoundContract(deployment.Address, *implABI, backend, backend, backend)
	tx, err := contract.Transact(auth, method)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to call %s on %s: %w", method, deployment.Address.Hex(), err)
	}
	i.log.Debug("initializer submitted", "method", method, "tx", tx.Hash())

	if _, err := waitSuccessful(ctx, backend, tx, i.confirmTimeout); err != nil {
		return tx.Hash(), fmt.Errorf("%s: %w", method, err)
	}
	return tx.Hash(), nil
}

var _ usecase.ProxyInitializer = (*Initializer)(nil)
