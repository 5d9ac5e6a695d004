package blockchain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/proxy-deploy/internal/domain"
	"github.com/trebuchet-org/proxy-deploy/internal/domain/config"
)

// Signer produces transaction options for the deployer key
type Signer struct {
	rawKey  string
	chainID uint64
}

// NewSigner creates a signer from the configured private key
func NewSigner(cfg *config.RuntimeConfig) *Signer {
	s := &Signer{rawKey: cfg.PrivateKey}
	if cfg.Network != nil {
		s.chainID = cfg.Network.ChainID
	}
	return s
}

// Address returns the deployer address
func (s *Signer) Address() (common.Address, error) {
	key, err := s.key()
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(key.PublicKey), nil
}

// TransactOpts returns keyed transact options bound to ctx
func (s *Signer) TransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	key, err := s.key()
	if err != nil {
		return nil, err
	}
	opts, err := bind.NewKeyedTransactorWithChainID(key, new(big.Int).SetUint64(s.chainID))
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx
	return opts, nil
}

func (s *Signer) key() (*ecdsa.PrivateKey, error) {
	raw := strings.TrimSpace(s.rawKey)
	if raw == "" {
		return nil, fmt.Errorf("%w: set PRIVATE_KEY in the environment or .env", domain.ErrMissingPrivateKey)
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimPrefix(raw, "0x"), "0X"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return key, nil
}
