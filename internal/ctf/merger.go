// Package ctf invokes the Conditional Token Framework's mergePositions call
// on Polygon to realize a filled Yes+No pair into collateral instantly,
// instead of waiting for market resolution.
package ctf

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/caesar-terminal/arbiter/internal/money"
)

const polygonChainID = 137

const ctfABI = `[{
	"inputs": [
		{"name": "collateralToken", "type": "address"},
		{"name": "parentCollectionId", "type": "bytes32"},
		{"name": "conditionId", "type": "bytes32"},
		{"name": "partition", "type": "uint256[]"},
		{"name": "amount", "type": "uint256"}
	],
	"name": "mergePositions",
	"outputs": [],
	"stateMutability": "nonpayable",
	"type": "function"
}, {
	"inputs": [
		{"name": "owner", "type": "address"},
		{"name": "operator", "type": "address"}
	],
	"name": "isApprovedForAll",
	"outputs": [{"name": "", "type": "bool"}],
	"stateMutability": "view",
	"type": "function"
}, {
	"inputs": [
		{"name": "operator", "type": "address"},
		{"name": "approved", "type": "bool"}
	],
	"name": "setApprovalForAll",
	"outputs": [],
	"stateMutability": "nonpayable",
	"type": "function"
}]`

// Config holds the on-chain addresses and retry policy for the Merger.
type Config struct {
	CTFAddress      string
	CollateralToken string // USDC
	MaxRetries      int
	InitialBackoff  time.Duration
	MaxBackoff      time.Duration
	GasLimit        uint64

	// ReorgRecheckDelay is how long after a confirmed receipt the Merger
	// re-checks that the transaction is still mined. Zero disables the
	// re-check.
	ReorgRecheckDelay time.Duration
}

func (c Config) maxRetries() int {
	if c.MaxRetries <= 0 {
		return 3
	}
	return c.MaxRetries
}

func (c Config) initialBackoff() time.Duration {
	if c.InitialBackoff <= 0 {
		return 500 * time.Millisecond
	}
	return c.InitialBackoff
}

func (c Config) maxBackoff() time.Duration {
	if c.MaxBackoff <= 0 {
		return 8 * time.Second
	}
	return c.MaxBackoff
}

func (c Config) gasLimit() uint64 {
	if c.GasLimit == 0 {
		return 250000
	}
	return c.GasLimit
}

// Client is the subset of ethclient.Client the Merger needs; narrowed to an
// interface so tests can substitute a fake without a live RPC endpoint.
type Client interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

var _ Client = (*ethclient.Client)(nil)

// Merger invokes CTF.mergePositions with a nonce-tracked signer. The nonce
// counter is owned here and allocated in strict submission order; a failed
// submission decrements it back so the next call does not leave a gap.
type Merger struct {
	cfg        Config
	client     Client
	privateKey *ecdsa.PrivateKey
	address    common.Address
	abi        abi.ABI
	logger     *zap.Logger

	mu          sync.Mutex
	nonce       uint64
	nonceLoaded bool
	approved    bool             // setApprovalForAll confirmed this process
	done        map[string]error // idempotency per (conditionID, qty)
}

// New constructs a Merger for the address the private key controls. The
// first Merge checks isApprovedForAll and sends setApprovalForAll when the
// CTF contract is not yet approved to move that address's outcome tokens.
func New(cfg Config, client Client, privateKey *ecdsa.PrivateKey, logger *zap.Logger) (*Merger, error) {
	parsed, err := abi.JSON(strings.NewReader(ctfABI))
	if err != nil {
		return nil, fmt.Errorf("ctf: parse CTF ABI: %w", err)
	}
	return &Merger{
		cfg:        cfg,
		client:     client,
		privateKey: privateKey,
		address:    crypto.PubkeyToAddress(privateKey.PublicKey),
		abi:        parsed,
		logger:     logger,
		done:       make(map[string]error),
	}, nil
}

// Merge sends mergePositions(parentCollectionId=0x00*32, conditionId, [1,2], amount)
// and blocks until the transaction confirms, retrying transient failures
// with bounded exponential backoff and fresh gas estimation.
func (m *Merger) Merge(ctx context.Context, conditionID string, qty money.Quantity) error {
	key := idempotencyKey(conditionID, qty)

	m.mu.Lock()
	if err, seen := m.done[key]; seen {
		m.mu.Unlock()
		return err
	}
	m.mu.Unlock()

	if err := m.ensureApproval(ctx); err != nil {
		return fmt.Errorf("ctf: ensure approval: %w", err)
	}

	var lastErr error
	backoff := m.cfg.initialBackoff()
	for attempt := 0; attempt <= m.cfg.maxRetries(); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > m.cfg.maxBackoff() {
				backoff = m.cfg.maxBackoff()
			}
		}

		err := m.attempt(ctx, conditionID, qty)
		if err == nil {
			m.mu.Lock()
			m.done[key] = nil
			m.mu.Unlock()
			return nil
		}
		lastErr = err
		if m.logger != nil {
			m.logger.Warn("ctf: merge attempt failed, retrying",
				zap.String("condition", conditionID), zap.Int("attempt", attempt), zap.Error(err))
		}
	}

	m.mu.Lock()
	m.done[key] = lastErr
	m.mu.Unlock()
	return fmt.Errorf("ctf: merge exhausted retries: %w", lastErr)
}

func (m *Merger) attempt(ctx context.Context, conditionID string, qty money.Quantity) error {
	nonce, err := m.allocateNonce(ctx)
	if err != nil {
		return err
	}

	data, err := m.abi.Pack("mergePositions",
		common.HexToAddress(m.cfg.CollateralToken),
		common.Hash{}, // parent collection ID: 32 zero bytes
		common.HexToHash(conditionID),
		[]*big.Int{big.NewInt(1), big.NewInt(2)}, // partition [1, 2]
		big.NewInt(int64(qty)),                    // 1 unit per contract in the CTF's scale
	)
	if err != nil {
		m.releaseNonce(nonce)
		return fmt.Errorf("pack mergePositions: %w", err)
	}

	gasPrice, err := m.client.SuggestGasPrice(ctx)
	if err != nil {
		m.releaseNonce(nonce)
		return fmt.Errorf("suggest gas price: %w", err)
	}

	tx := types.NewTransaction(nonce, common.HexToAddress(m.cfg.CTFAddress), big.NewInt(0), m.cfg.gasLimit(), gasPrice, data)
	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(big.NewInt(polygonChainID)), m.privateKey)
	if err != nil {
		m.releaseNonce(nonce)
		return fmt.Errorf("sign merge tx: %w", err)
	}

	if err := m.client.SendTransaction(ctx, signedTx); err != nil {
		m.releaseNonce(nonce)
		return fmt.Errorf("send merge tx: %w", err)
	}

	receipt, err := waitMined(ctx, m.client, signedTx.Hash())
	if err != nil {
		return fmt.Errorf("await merge confirmation: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return errors.New("merge transaction reverted")
	}

	// Receipt re-check: a block that carried the merge can still be
	// orphaned. If the receipt has vanished, report failure so the retry
	// loop re-merges with a fresh nonce and gas.
	if m.cfg.ReorgRecheckDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.cfg.ReorgRecheckDelay):
		}
		if _, err := m.client.TransactionReceipt(ctx, signedTx.Hash()); err != nil {
			return fmt.Errorf("merge receipt vanished after confirmation (reorg): %w", err)
		}
	}
	return nil
}

// ensureApproval grants the CTF contract blanket approval over the outcome
// tokens before the first merge, once per process. Re-granting on every
// merge would burn gas for nothing.
func (m *Merger) ensureApproval(ctx context.Context) error {
	m.mu.Lock()
	already := m.approved
	m.mu.Unlock()
	if already {
		return nil
	}

	ctfAddr := common.HexToAddress(m.cfg.CTFAddress)
	query, err := m.abi.Pack("isApprovedForAll", m.address, ctfAddr)
	if err != nil {
		return fmt.Errorf("pack isApprovedForAll: %w", err)
	}

	out, err := m.client.CallContract(ctx, ethereum.CallMsg{To: &ctfAddr, Data: query}, nil)
	if err != nil {
		return fmt.Errorf("read approval state: %w", err)
	}
	var granted bool
	if vals, err := m.abi.Unpack("isApprovedForAll", out); err == nil && len(vals) == 1 {
		granted, _ = vals[0].(bool)
	}

	if !granted {
		if err := m.sendApproval(ctx, ctfAddr); err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.approved = true
	m.mu.Unlock()
	return nil
}

func (m *Merger) sendApproval(ctx context.Context, ctfAddr common.Address) error {
	nonce, err := m.allocateNonce(ctx)
	if err != nil {
		return err
	}

	data, err := m.abi.Pack("setApprovalForAll", ctfAddr, true)
	if err != nil {
		m.releaseNonce(nonce)
		return fmt.Errorf("pack setApprovalForAll: %w", err)
	}

	gasPrice, err := m.client.SuggestGasPrice(ctx)
	if err != nil {
		m.releaseNonce(nonce)
		return fmt.Errorf("suggest gas price: %w", err)
	}

	tx := types.NewTransaction(nonce, ctfAddr, big.NewInt(0), m.cfg.gasLimit(), gasPrice, data)
	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(big.NewInt(polygonChainID)), m.privateKey)
	if err != nil {
		m.releaseNonce(nonce)
		return fmt.Errorf("sign approval tx: %w", err)
	}

	if err := m.client.SendTransaction(ctx, signedTx); err != nil {
		m.releaseNonce(nonce)
		return fmt.Errorf("send approval tx: %w", err)
	}

	receipt, err := waitMined(ctx, m.client, signedTx.Hash())
	if err != nil {
		return fmt.Errorf("await approval confirmation: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return errors.New("approval transaction reverted")
	}
	if m.logger != nil {
		m.logger.Info("ctf: outcome-token approval granted", zap.String("operator", m.cfg.CTFAddress))
	}
	return nil
}

// allocateNonce returns the next nonce to use, loading the on-chain pending
// nonce once on first use and incrementing locally thereafter, preserving
// strict submission order.
func (m *Merger) allocateNonce(ctx context.Context) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.nonceLoaded {
		n, err := m.client.PendingNonceAt(ctx, m.address)
		if err != nil {
			return 0, fmt.Errorf("load pending nonce: %w", err)
		}
		m.nonce = n
		m.nonceLoaded = true
	}
	n := m.nonce
	m.nonce++
	return n, nil
}

// releaseNonce decrements the local counter after a failed submission so the
// next attempt reuses the same nonce rather than leaving a gap.
func (m *Merger) releaseNonce(used uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.nonceLoaded && m.nonce == used+1 {
		m.nonce = used
	}
}

func idempotencyKey(conditionID string, qty money.Quantity) string {
	return fmt.Sprintf("%s:%d", conditionID, qty)
}

// waitMined polls for a transaction receipt, bounded by ctx.
func waitMined(ctx context.Context, client Client, txHash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		receipt, err := client.TransactionReceipt(ctx, txHash)
		if err == nil && receipt != nil {
			return receipt, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
