package usecase

import (
	"context"

	"github.com/samber/lo"
	"github.com/trebuchet-org/stake-deployer/internal/domain"
	"github.com/trebuchet-org/stake-deployer/internal/domain/models"
)

// ShowHistoryParams contains parameters for listing past runs
type ShowHistoryParams struct {
	NetworkName string
	// Plan restricts the history to one plan, empty lists all plans
	Plan string
	// Limit caps the number of runs, zero means no limit
	Limit int
}

// ShowHistoryResult contains the runs of a network, newest first
type ShowHistoryResult struct {
	NetworkName string
	ChainID     uint64
	Records     []*models.DeploymentRecord
}

// ShowHistory lists persisted deployment runs of a network
type ShowHistory struct {
	resolver NetworkResolver
	records  DeploymentRecordStore
}

// NewShowHistory creates a new ShowHistory use case
func NewShowHistory(resolver NetworkResolver, records DeploymentRecordStore) *ShowHistory {
	return &ShowHistory{
		resolver: resolver,
		records:  records,
	}
}

// Run executes the use case
func (uc *ShowHistory) Run(ctx context.Context, params ShowHistoryParams) (*ShowHistoryResult, error) {
	network, err := uc.resolver.ResolveNetwork(ctx, params.NetworkName)
	if err != nil {
		return nil, &domain.ConfigurationError{Network: params.NetworkName, Err: err}
	}
	if !network.HasChainID() {
		return nil, &domain.ConfigurationError{Network: params.NetworkName, Err: domain.ErrMissingNetworkIdentifier}
	}

	records, err := uc.records.ListRecords(ctx, *network.ChainID, params.Plan)
	if err != nil {
		return nil, err
	}
	if params.Limit > 0 {
		records = lo.Slice(records, 0, params.Limit)
	}

	return &ShowHistoryResult{
		NetworkName: network.Name,
		ChainID:     *network.ChainID,
		Records:     records,
	}, nil
}
