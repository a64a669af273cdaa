package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/stake-deployer/internal/domain"
	"github.com/trebuchet-org/stake-deployer/internal/domain/config"
	"github.com/trebuchet-org/stake-deployer/internal/domain/models"
	"github.com/trebuchet-org/stake-deployer/internal/usecase"
)

func TestShowHistory(t *testing.T) {
	ctx := context.Background()
	records := newMemoryRecords()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, plan := range []string{"stake", "stake", "other"} {
		require.NoError(t, records.SaveRecord(ctx, &models.DeploymentRecord{
			RunID:     string(rune('a' + i)),
			Plan:      plan,
			ChainID:   11155111,
			Status:    models.RecordCompleted,
			StartedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	resolver := new(MockNetworkResolver)
	resolver.On("ResolveNetwork", ctx, "sepolia").Return(&config.Network{Name: "sepolia", ChainID: chainID(11155111)}, nil)
	resolver.On("ResolveNetwork", ctx, "hardhat").Return(&config.Network{Name: "hardhat"}, nil)

	uc := usecase.NewShowHistory(resolver, records)

	t.Run("all plans newest first", func(t *testing.T) {
		result, err := uc.Run(ctx, usecase.ShowHistoryParams{NetworkName: "sepolia"})
		require.NoError(t, err)
		require.Len(t, result.Records, 3)
		assert.Equal(t, "c", result.Records[0].RunID)
	})

	t.Run("single plan with limit", func(t *testing.T) {
		result, err := uc.Run(ctx, usecase.ShowHistoryParams{NetworkName: "sepolia", Plan: "stake", Limit: 1})
		require.NoError(t, err)
		require.Len(t, result.Records, 1)
		assert.Equal(t, "b", result.Records[0].RunID)
	})

	t.Run("network without chain id", func(t *testing.T) {
		_, err := uc.Run(ctx, usecase.ShowHistoryParams{NetworkName: "hardhat"})
		assert.ErrorIs(t, err, domain.ErrMissingNetworkIdentifier)
	})
}
