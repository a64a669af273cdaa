package progress

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/trebuchet-org/stake-deployer/internal/domain/models"
	"github.com/trebuchet-org/stake-deployer/internal/usecase"
)

func TestDeployProgress(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	ctx := context.Background()
	var buf bytes.Buffer
	p := NewDeployProgress(&buf)

	core := models.ContractSpec{Name: "Core", Artifact: "StakeCore"}
	coreAddr := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

	p.OnProgress(ctx, usecase.ProgressEvent{
		Stage: usecase.StageNetworkResolved,
		Metadata: &models.NetworkContext{
			ChainID:         11155111,
			NetworkName:     "sepolia",
			DeployerAddress: common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"),
		},
	})
	p.OnProgress(ctx, usecase.ProgressEvent{
		Stage: usecase.StageContractSubmitting, Current: 1, Total: 2,
		Message: "Deploying Core", Spinner: true, Metadata: core,
	})
	p.OnProgress(ctx, usecase.ProgressEvent{
		Stage: usecase.StageContractConfirmed, Current: 1, Total: 2,
		Metadata: &models.DeployedContract{Spec: core, Address: coreAddr, BlockNumber: 7},
	})
	p.OnProgress(ctx, usecase.ProgressEvent{
		Stage: usecase.StageContractFailed, Current: 2, Total: 2,
		Message:  errors.New("execution reverted").Error(),
		Metadata: models.ContractSpec{Name: "Beneficiary", Artifact: "BeneficiaryCore"},
	})
	p.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StagePlanCompleted})

	out := buf.String()
	assert.Contains(t, out, "sepolia")
	assert.Contains(t, out, "11155111")
	assert.Contains(t, out, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	assert.Contains(t, out, "[1/2] ✓ Core "+coreAddr.Hex()+" (block 7)")
	assert.Contains(t, out, "[2/2] ✗ Beneficiary: execution reverted")
}

func TestDeployProgressIgnoresUnknownMetadata(t *testing.T) {
	var buf bytes.Buffer
	p := NewDeployProgress(&buf)

	p.OnProgress(context.Background(), usecase.ProgressEvent{Stage: usecase.StageNetworkResolved, Metadata: "sepolia"})
	p.OnProgress(context.Background(), usecase.ProgressEvent{Stage: "something_else"})

	assert.Empty(t, buf.String())
}
