package usecase

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/stake-deployer/internal/domain/config"
	"github.com/trebuchet-org/stake-deployer/internal/domain/models"
)

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
}

// SignerProvider exposes the deployer identity. The key itself never leaves the adapter.
type SignerProvider interface {
	// DeployerAddress returns domain.ErrMissingSigner or domain.ErrInvalidSigner
	// when no usable key is configured
	DeployerAddress(ctx context.Context) (common.Address, error)
}

// ArtifactRepository provides compiled contracts by name
type ArtifactRepository interface {
	// GetArtifact returns domain.ErrArtifactNotFound when no artifact matches
	GetArtifact(ctx context.Context, name string) (*models.Artifact, error)
}

// ContractDeployer submits contract-creation transactions and waits for them
type ContractDeployer interface {
	// Connect dials the network's RPC and checks that it serves the declared chain
	Connect(ctx context.Context, network *models.NetworkContext) error
	// CheckArguments reports constructor values the artifact's ABI cannot encode
	CheckArguments(artifact *models.Artifact, args []any) error
	Submit(ctx context.Context, artifact *models.Artifact, args []any) (*models.Submission, error)
	// AwaitConfirmation blocks until the submission is mined or timeout elapses.
	// A zero timeout waits until ctx is done.
	AwaitConfirmation(ctx context.Context, submission *models.Submission, timeout time.Duration) (*models.Confirmation, error)
	HasCode(ctx context.Context, address common.Address) (bool, error)
}

// DeploymentRecordStore persists deployment runs
type DeploymentRecordStore interface {
	SaveRecord(ctx context.Context, record *models.DeploymentRecord) error
	// LatestRecord returns domain.ErrNotFound when the plan never ran on the chain
	LatestRecord(ctx context.Context, chainID uint64, plan string) (*models.DeploymentRecord, error)
	// ListRecords returns runs on a chain, newest first. An empty plan matches all plans.
	ListRecords(ctx context.Context, chainID uint64, plan string) ([]*models.DeploymentRecord, error)
}

// NetworkSelector picks a network interactively
type NetworkSelector interface {
	SelectNetwork(ctx context.Context, networks []string) (string, error)
}

// FileWriter handles file system operations for scaffolding
type FileWriter interface {
	WriteFile(ctx context.Context, path string, content []byte) error
	FileExists(ctx context.Context, path string) (bool, error)
	EnsureDirectory(ctx context.Context, path string) error
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// Progress stages emitted by DeployPlan
const (
	StageNetworkResolved    = "network_resolved"
	StageContractReused     = "contract_reused"
	StageContractSubmitting = "contract_submitting"
	StageContractSubmitted  = "contract_submitted"
	StageContractConfirmed  = "contract_confirmed"
	StageContractFailed     = "contract_failed"
	StagePlanCompleted      = "plan_completed"
)

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
