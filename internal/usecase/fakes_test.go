package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/mock"
	"github.com/trebuchet-org/stake-deployer/internal/adapters/blockchain"
	"github.com/trebuchet-org/stake-deployer/internal/domain"
	"github.com/trebuchet-org/stake-deployer/internal/domain/config"
	"github.com/trebuchet-org/stake-deployer/internal/domain/models"
	"github.com/trebuchet-org/stake-deployer/internal/usecase"
)

var (
	testDeployer = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	testToken    = "0x46bEE5F8aF3dcff4D6C97993b815785E27cAE80c"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockNetworkResolver is a mock implementation of NetworkResolver
type MockNetworkResolver struct {
	mock.Mock
}

func (m *MockNetworkResolver) GetNetworks(ctx context.Context) []string {
	args := m.Called(ctx)
	return args.Get(0).([]string)
}

func (m *MockNetworkResolver) ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error) {
	args := m.Called(ctx, networkName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.Network), args.Error(1)
}

// MockSignerProvider is a mock implementation of SignerProvider
type MockSignerProvider struct {
	mock.Mock
}

func (m *MockSignerProvider) DeployerAddress(ctx context.Context) (common.Address, error) {
	args := m.Called(ctx)
	return args.Get(0).(common.Address), args.Error(1)
}

// MockNetworkSelector is a mock implementation of NetworkSelector
type MockNetworkSelector struct {
	mock.Mock
}

func (m *MockNetworkSelector) SelectNetwork(ctx context.Context, networks []string) (string, error) {
	args := m.Called(ctx, networks)
	return args.String(0), args.Error(1)
}

// recordingSink collects progress events
type recordingSink struct {
	events []usecase.ProgressEvent
	infos  []string
}

func (s *recordingSink) OnProgress(_ context.Context, event usecase.ProgressEvent) {
	s.events = append(s.events, event)
}
func (s *recordingSink) Info(message string)  { s.infos = append(s.infos, message) }
func (s *recordingSink) Error(message string) {}

func (s *recordingSink) stages() []string {
	stages := make([]string, len(s.events))
	for i, e := range s.events {
		stages[i] = e.Stage
	}
	return stages
}

// fakeArtifacts serves artifacts from memory
type fakeArtifacts map[string]*models.Artifact

func (f fakeArtifacts) GetArtifact(_ context.Context, name string) (*models.Artifact, error) {
	artifact, ok := f[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, name)
	}
	return artifact, nil
}

// newArtifact builds an artifact whose constructor takes the given solidity types
func newArtifact(name string, inputs ...string) *models.Artifact {
	args := make(abi.Arguments, len(inputs))
	for i, in := range inputs {
		typ, err := abi.NewType(in, "", nil)
		if err != nil {
			panic(err)
		}
		args[i] = abi.Argument{Name: fmt.Sprintf("arg%d", i), Type: typ}
	}
	return &models.Artifact{
		Name:     name,
		ABI:      abi.ABI{Constructor: abi.NewMethod("", "", abi.Constructor, "nonpayable", false, false, args, nil)},
		Bytecode: []byte{0x60, 0x00},
	}
}

func stakeArtifacts() fakeArtifacts {
	return fakeArtifacts{
		"StakeCore":       newArtifact("StakeCore", "address", "uint256", "uint256", "uint256"),
		"BeneficiaryCore": newArtifact("BeneficiaryCore", "address", "address", "address"),
	}
}

type submittedTx struct {
	Artifact string
	Args     []any
}

// fakeDeployer derives contract addresses from the deployer nonce like a real chain does
type fakeDeployer struct {
	from       common.Address
	nonce      uint64
	connected  *models.NetworkContext
	connectErr error

	checked   []string
	submitted []submittedTx
	pending   map[common.Hash]string
	code      map[common.Address]bool

	submitErr  map[string]error
	outcomes   map[string]models.Confirmation
	confirmErr map[string]error
	calls      int
}

func newFakeDeployer(from common.Address) *fakeDeployer {
	return &fakeDeployer{
		from:       from,
		pending:    make(map[common.Hash]string),
		code:       make(map[common.Address]bool),
		submitErr:  make(map[string]error),
		outcomes:   make(map[string]models.Confirmation),
		confirmErr: make(map[string]error),
	}
}

func (f *fakeDeployer) Connect(_ context.Context, network *models.NetworkContext) error {
	f.calls++
	if f.connectErr != nil {
		return f.connectErr
	}
	f.connected = network
	return nil
}

// CheckArguments uses the real ABI coercion so literal typos surface like they do on chain
func (f *fakeDeployer) CheckArguments(artifact *models.Artifact, args []any) error {
	f.checked = append(f.checked, artifact.Name)
	_, err := blockchain.CoerceArguments(artifact.ConstructorInputs(), args)
	return err
}

func (f *fakeDeployer) Submit(_ context.Context, artifact *models.Artifact, args []any) (*models.Submission, error) {
	f.calls++
	f.submitted = append(f.submitted, submittedTx{Artifact: artifact.Name, Args: args})
	if err := f.submitErr[artifact.Name]; err != nil {
		return nil, err
	}

	address := crypto.CreateAddress(f.from, f.nonce)
	sub := &models.Submission{
		TxHash:  crypto.Keccak256Hash(address.Bytes()),
		Address: address,
		Nonce:   f.nonce,
	}
	f.nonce++
	f.pending[sub.TxHash] = artifact.Name
	return sub, nil
}

func (f *fakeDeployer) AwaitConfirmation(ctx context.Context, sub *models.Submission, _ time.Duration) (*models.Confirmation, error) {
	f.calls++
	name := f.pending[sub.TxHash]
	if err := f.confirmErr[name]; err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if outcome, ok := f.outcomes[name]; ok {
		return &outcome, nil
	}
	f.code[sub.Address] = true
	return &models.Confirmation{
		Outcome:     models.OutcomeConfirmed,
		Address:     sub.Address,
		BlockNumber: sub.Nonce + 1,
	}, nil
}

func (f *fakeDeployer) HasCode(_ context.Context, address common.Address) (bool, error) {
	f.calls++
	return f.code[address], nil
}

// memoryRecords keeps records in memory, copying on save
type memoryRecords struct {
	records map[string]models.DeploymentRecord
	saves   int
}

func newMemoryRecords() *memoryRecords {
	return &memoryRecords{records: make(map[string]models.DeploymentRecord)}
}

func (m *memoryRecords) SaveRecord(_ context.Context, record *models.DeploymentRecord) error {
	m.saves++
	cp := *record
	cp.Contracts = append([]models.RecordedEntry(nil), record.Contracts...)
	m.records[record.RunID] = cp
	return nil
}

func (m *memoryRecords) LatestRecord(ctx context.Context, chainID uint64, plan string) (*models.DeploymentRecord, error) {
	records, _ := m.ListRecords(ctx, chainID, plan)
	if len(records) == 0 {
		return nil, domain.ErrNotFound
	}
	return records[0], nil
}

func (m *memoryRecords) ListRecords(_ context.Context, chainID uint64, plan string) ([]*models.DeploymentRecord, error) {
	var out []*models.DeploymentRecord
	for _, r := range m.records {
		if r.ChainID == chainID && (plan == "" || r.Plan == plan) {
			r := r
			out = append(out, &r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out, nil
}
