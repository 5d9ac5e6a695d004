package blockchain

import (
	"context"
	"encoding/hex"
	"io"
	"log/slog"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/proxy-deploy/internal/domain/config"
	"github.com/trebuchet-org/proxy-deploy/internal/domain/models"
)

const testChainID = 31337

const implementationABI = `[
	{"type":"function","name":"_init","inputs":[],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"initialize","inputs":[{"name":"owner","type":"address"}],"outputs":[],"stateMutability":"nonpayable"}
]`

// counterABI has only the post-deploy entry point
const counterABI = `[
	{"type":"function","name":"_init","inputs":[],"outputs":[],"stateMutability":"nonpayable"}
]`

// initializableABI declares an argument-less initialize
const initializableABI = `[
	{"type":"function","name":"_init","inputs":[],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"initialize","inputs":[],"outputs":[],"stateMutability":"nonpayable"}
]`

const proxyABI = `[
	{"type":"constructor","inputs":[{"name":"implementation","type":"address"},{"name":"_data","type":"bytes"}],"stateMutability":"payable"}
]`

// fakeBackend serves the node calls made by the deploy helpers.
// Transactions are mined as soon as they are sent.
type fakeBackend struct {
	Backend

	mu       sync.Mutex
	sent     []*types.Transaction
	reverted map[int]bool
	noCode   bool
	storage  map[common.Hash][]byte
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		reverted: map[int]bool{},
		storage:  map[common.Hash][]byte{},
	}
}

// staticProvider hands out a fixed backend
type staticProvider struct{ backend Backend }

func (p staticProvider) Backend(context.Context) (Backend, error) { return p.backend, nil }

func (f *fakeBackend) ChainID(context.Context) (*big.Int, error) {
	return big.NewInt(testChainID), nil
}

func (f *fakeBackend) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	return &types.Header{Number: big.NewInt(1), BaseFee: big.NewInt(1_000_000_000)}, nil
}

func (f *fakeBackend) PendingCodeAt(context.Context, common.Address) ([]byte, error) {
	return []byte{0x60}, nil
}

func (f *fakeBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint64(len(f.sent)), nil
}

func (f *fakeBackend) SuggestGasPrice(context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (f *fakeBackend) SuggestGasTipCap(context.Context) (*big.Int, error) {
	return big.NewInt(1), nil
}

func (f *fakeBackend) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 500_000, nil
}

func (f *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, tx)
	return nil
}

func (f *fakeBackend) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, tx := range f.sent {
		if tx.Hash() != hash {
			continue
		}
		status := types.ReceiptStatusSuccessful
		if f.reverted[i] {
			status = types.ReceiptStatusFailed
		}
		return &types.Receipt{
			Status:      status,
			TxHash:      hash,
			BlockNumber: big.NewInt(int64(i + 1)),
		}, nil
	}
	return nil, ethereum.NotFound
}

func (f *fakeBackend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	if f.noCode {
		return nil, nil
	}
	return []byte{0x60, 0x80}, nil
}

func (f *fakeBackend) StorageAt(_ context.Context, _ common.Address, key common.Hash, _ *big.Int) ([]byte, error) {
	if value, ok := f.storage[key]; ok {
		return value, nil
	}
	return make([]byte, 32), nil
}

func (f *fakeBackend) transactions() []*types.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*types.Transaction(nil), f.sent...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testConfig returns a runtime config with a fresh deployer key and its address
func testConfig(t *testing.T) (*config.RuntimeConfig, common.Address) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return &config.RuntimeConfig{
		PrivateKey:     "0x" + hex.EncodeToString(crypto.FromECDSA(key)),
		ConfirmTimeout: 5 * time.Second,
		Network:        &config.Network{Name: "anvil", ChainID: testChainID},
	}, crypto.PubkeyToAddress(key.PublicKey)
}

func testContract(name, abiJSON string) *models.Contract {
	return &models.Contract{
		Name: name,
		Path: "src/" + name + ".sol",
		Artifact: &models.Artifact{
			ABI:      []byte(abiJSON),
			Bytecode: models.BytecodeObject{Object: "0x6080604052348015600e575f5ffd5b50"},
		},
	}
}
