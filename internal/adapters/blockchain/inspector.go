package blockchain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/proxy-deploy/internal/domain"
	"github.com/trebuchet-org/proxy-deploy/internal/usecase"
)

// ImplementationSlot is the ERC-1967 storage slot holding the implementation address:
// bytes32(uint256(keccak256("eip1967.proxy.implementation")) - 1)
var ImplementationSlot = common.HexToHash("0x360894a13ba1a3210667c828492db98dca3e2076cc3735a920a3ca505d382bbc")

// Inspector reads ERC-1967 proxy storage
type Inspector struct {
	backends BackendProvider
	log      *slog.Logger
}

// NewInspector creates a new proxy inspector
func NewInspector(backends BackendProvider, log *slog.Logger) *Inspector {
	return &Inspector{
		backends: backends,
		log:      log.With("component", "Inspector"),
	}
}

// ImplementationAddress returns the implementation the proxy currently delegates to
func (i *Inspector) ImplementationAddress(ctx context.Context, proxy common.Address) (common.Address, error) {
	backend, err := i.backends.Backend(ctx)
	if err != nil {
		return common.Address{}, err
	}

	value, err := backend.StorageAt(ctx, proxy, ImplementationSlot, nil)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to read implementation slot of %s: %w", proxy.Hex(), err)
	}

	impl := common.BytesToAddress(value)
	if impl == (common.Address{}) {
		return common.Address{}, fmt.Errorf("%w: proxy %s", domain.ErrImplementationNotFound, proxy.Hex())
	}
	i.log.Debug("read implementation", "proxy", proxy, "implementation", impl)
	return impl, nil
}

var _ usecase.ImplementationInspector = (*Inspector)(nil)
