package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/stake-deployer/internal/domain"
	"github.com/trebuchet-org/stake-deployer/internal/domain/models"
	"github.com/trebuchet-org/stake-deployer/internal/usecase"
)

// Backend is the part of an RPC client needed to deploy contracts
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// DialFunc connects to an RPC endpoint
type DialFunc func(ctx context.Context, rpcURL string) (Backend, error)

// TransactorProvider creates signing options for a chain
type TransactorProvider interface {
	Transactor(chainID *big.Int) (*bind.TransactOpts, error)
}

var errNotConnected = errors.New("not connected to blockchain")

// DeployerAdapter implements usecase.ContractDeployer on top of go-ethereum
type DeployerAdapter struct {
	signer TransactorProvider
	dial   DialFunc
	log    *slog.Logger

	mu      sync.Mutex
	client  Backend
	network *models.NetworkContext
	auth    *bind.TransactOpts
	nonce   uint64
	pending map[common.Hash]*types.Transaction
}

// NewDeployerAdapter creates a deployer that dials networks with ethclient
func NewDeployerAdapter(signer TransactorProvider, log *slog.Logger) *DeployerAdapter {
	return NewDeployerAdapterWithDialer(signer, dialEthclient, log)
}

// NewDeployerAdapterWithDialer creates a deployer with a custom dialer
func NewDeployerAdapterWithDialer(signer TransactorProvider, dial DialFunc, log *slog.Logger) *DeployerAdapter {
	return &DeployerAdapter{
		signer:  signer,
		dial:    dial,
		log:     log.With("component", "ContractDeployer"),
		pending: make(map[common.Hash]*types.Transaction),
	}
}

func dialEthclient(ctx context.Context, rpcURL string) (Backend, error) {
	return ethclient.DialContext(ctx, rpcURL)
}

// Connect establishes connection to the blockchain and verifies its chain ID
func (d *DeployerAdapter) Connect(ctx context.Context, network *models.NetworkContext) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if network.RPCURL == "" {
		return fmt.Errorf("network %s has no rpc_url", network.NetworkName)
	}

	d.log.Debug("dialing RPC", "network", network.NetworkName)
	client, err := d.dial(ctx, network.RPCURL)
	if err != nil {
		return fmt.Errorf("failed to connect to RPC: %w", err)
	}

	networkChainID, err := client.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain ID: %w", err)
	}
	if networkChainID.Uint64() != network.ChainID {
		return fmt.Errorf("%w: %s declares chain ID %d, RPC reports %d",
			domain.ErrNetworkMismatch, network.NetworkName, network.ChainID, networkChainID.Uint64())
	}

	auth, err := d.signer.Transactor(new(big.Int).SetUint64(network.ChainID))
	if err != nil {
		return err
	}
	if auth.From != network.DeployerAddress {
		return fmt.Errorf("signer %s does not match deployer %s", auth.From.Hex(), network.DeployerAddress.Hex())
	}

	nonce, err := client.PendingNonceAt(ctx, auth.From)
	if err != nil {
		return fmt.Errorf("failed to get nonce of %s: %w", auth.From.Hex(), err)
	}

	d.client = client
	d.network = network
	d.auth = auth
	d.nonce = nonce
	d.log.Debug("connected", "chainId", network.ChainID, "deployer", auth.From.Hex(), "nonce", nonce)

	return nil
}

// CheckArguments converts args like Submit does without sending anything
func (d *DeployerAdapter) CheckArguments(artifact *models.Artifact, args []any) error {
	if _, err := CoerceArguments(artifact.ConstructorInputs(), args); err != nil {
		return fmt.Errorf("invalid constructor arguments for %s: %w", artifact.Name, err)
	}
	return nil
}

// Submit signs and sends a contract-creation transaction with the next nonce
func (d *DeployerAdapter) Submit(ctx context.Context, artifact *models.Artifact, args []any) (*models.Submission, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.client == nil {
		return nil, errNotConnected
	}

	values, err := CoerceArguments(artifact.ConstructorInputs(), args)
	if err != nil {
		return nil, fmt.Errorf("invalid constructor arguments for %s: %w", artifact.Name, err)
	}

	opts := *d.auth
	opts.Context = ctx
	opts.Nonce = new(big.Int).SetUint64(d.nonce)

	address, tx, _, err := bind.DeployContract(&opts, artifact.ABI, artifact.Bytecode, d.client, values...)
	if err != nil {
		d.resyncNonce(ctx)
		return nil, fmt.Errorf("failed to deploy %s: %w", artifact.Name, err)
	}

	d.nonce++
	d.pending[tx.Hash()] = tx
	d.log.Info("contract deployment transaction sent",
		"contract", artifact.Name,
		"address", address.Hex(),
		"tx_hash", tx.Hash().Hex(),
		"nonce", tx.Nonce(),
	)

	return &models.Submission{
		TxHash:  tx.Hash(),
		Address: address,
		Nonce:   tx.Nonce(),
	}, nil
}

// AwaitConfirmation waits for the receipt of a submission. A reverted
// transaction or a receipt without code at the contract address is Failed,
// an elapsed timeout is TimedOut. Cancellation of ctx is returned as an error.
func (d *DeployerAdapter) AwaitConfirmation(ctx context.Context, submission *models.Submission, timeout time.Duration) (*models.Confirmation, error) {
	d.mu.Lock()
	client := d.client
	tx, ok := d.pending[submission.TxHash]
	d.mu.Unlock()

	if client == nil {
		return nil, errNotConnected
	}
	if !ok {
		return nil, fmt.Errorf("unknown transaction %s", submission.TxHash.Hex())
	}

	waitCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	receipt, err := bind.WaitMined(waitCtx, client, tx)
	if err != nil {
		if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			return &models.Confirmation{
				Outcome: models.OutcomeTimedOut,
				Address: submission.Address,
				Reason:  fmt.Sprintf("not mined within %s", timeout),
			}, nil
		}
		return nil, err
	}

	d.mu.Lock()
	delete(d.pending, submission.TxHash)
	d.mu.Unlock()

	confirmation := &models.Confirmation{
		Address: receipt.ContractAddress,
		GasUsed: receipt.GasUsed,
	}
	if receipt.BlockNumber != nil {
		confirmation.BlockNumber = receipt.BlockNumber.Uint64()
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		confirmation.Outcome = models.OutcomeFailed
		confirmation.Reason = fmt.Sprintf("transaction reverted in block %d", confirmation.BlockNumber)
		return confirmation, nil
	}

	code, err := client.CodeAt(ctx, receipt.ContractAddress, receipt.BlockNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check code: %w", err)
	}
	if len(code) == 0 {
		confirmation.Outcome = models.OutcomeFailed
		confirmation.Reason = "no code at contract address"
		return confirmation, nil
	}

	confirmation.Outcome = models.OutcomeConfirmed
	return confirmation, nil
}

// HasCode checks if a contract exists at the given address
func (d *DeployerAdapter) HasCode(ctx context.Context, address common.Address) (bool, error) {
	d.mu.Lock()
	client := d.client
	d.mu.Unlock()

	if client == nil {
		return false, errNotConnected
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	code, err := client.CodeAt(ctx, address, nil)
	if err != nil {
		return false, fmt.Errorf("failed to check code: %w", err)
	}
	return len(code) > 0, nil
}

// resyncNonce reloads the pending nonce after a rejected transaction
func (d *DeployerAdapter) resyncNonce(ctx context.Context) {
	nonce, err := d.client.PendingNonceAt(ctx, d.auth.From)
	if err != nil {
		d.log.Warn("failed to resync nonce", "error", err)
		return
	}
	d.nonce = nonce
}

// Ensure the adapter implements the interface
var _ usecase.ContractDeployer = (*DeployerAdapter)(nil)
