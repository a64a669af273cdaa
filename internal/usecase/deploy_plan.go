package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/trebuchet-org/stake-deployer/internal/domain"
	"github.com/trebuchet-org/stake-deployer/internal/domain/models"
)

// DeployPlanParams contains parameters for deploying a plan
type DeployPlanParams struct {
	Network *models.NetworkContext
	Plan    *models.Plan
	// ConfirmationTimeout bounds the wait for each contract, zero waits until cancelled
	ConfirmationTimeout time.Duration
	// Resume reuses the confirmed prefix of the latest recorded run
	Resume bool
}

// DeployPlanResult contains the outcome of a run. It is returned even when the
// run fails, holding the contracts confirmed before the failure.
type DeployPlanResult struct {
	Network *models.NetworkContext
	Plan    *models.Plan
	Result  *models.DeploymentResult
	Record  *models.DeploymentRecord

	// FailedIndex is the plan index of the contract that aborted the run, -1 on success
	FailedIndex int
	Err         error
}

// Success reports whether every contract of the plan was confirmed
func (r *DeployPlanResult) Success() bool {
	return r.Err == nil && r.Result.Len() == len(r.Plan.Contracts)
}

// Reused returns the number of contracts taken over from a previous run
func (r *DeployPlanResult) Reused() int {
	return lo.CountBy(r.Result.Contracts, func(c models.DeployedContract) bool { return c.Reused })
}

// DeployPlan deploys the contracts of a plan one after another, feeding the
// addresses of confirmed contracts into the constructors of later ones
type DeployPlan struct {
	artifacts ArtifactRepository
	deployer  ContractDeployer
	records   DeploymentRecordStore
	progress  ProgressSink
	log       *slog.Logger

	now      func() time.Time
	newRunID func() string
}

// NewDeployPlan creates a new DeployPlan use case
func NewDeployPlan(
	artifacts ArtifactRepository,
	deployer ContractDeployer,
	records DeploymentRecordStore,
	progress ProgressSink,
	log *slog.Logger,
) *DeployPlan {
	return &DeployPlan{
		artifacts: artifacts,
		deployer:  deployer,
		records:   records,
		progress:  progress,
		log:       log.With("component", "DeployPlan"),
		now:       time.Now,
		newRunID:  uuid.NewString,
	}
}

// Run deploys the plan on the given network. Nothing is submitted before the
// plan, its references, all artifacts and every literal argument have been
// checked. The first failing
// contract stops the run: later contracts are never submitted.
func (uc *DeployPlan) Run(ctx context.Context, params DeployPlanParams) (*DeployPlanResult, error) {
	network, plan := params.Network, params.Plan
	if network == nil || network.ChainID == 0 {
		return nil, &domain.ConfigurationError{Err: domain.ErrMissingNetworkIdentifier}
	}
	if plan == nil {
		return nil, &domain.ConfigurationError{Network: network.NetworkName, Err: domain.ErrInvalidPlan}
	}

	if err := plan.Validate(); err != nil {
		return nil, &domain.ConfigurationError{Network: network.NetworkName, Err: err}
	}
	if err := CheckReferences(plan); err != nil {
		return nil, err
	}

	artifacts, err := uc.loadArtifacts(ctx, plan)
	if err != nil {
		return nil, &domain.ConfigurationError{Network: network.NetworkName, Err: err}
	}
	if err := uc.checkArguments(plan, network, artifacts); err != nil {
		return nil, &domain.ConfigurationError{Network: network.NetworkName, Err: err}
	}

	if err := uc.deployer.Connect(ctx, network); err != nil {
		return nil, &domain.ConfigurationError{Network: network.NetworkName, Err: err}
	}

	result := &DeployPlanResult{
		Network:     network,
		Plan:        plan,
		Result:      &models.DeploymentResult{},
		Record:      uc.newRecord(network, plan),
		FailedIndex: -1,
	}

	if params.Resume {
		if err := uc.reusePrevious(ctx, result); err != nil {
			return nil, fmt.Errorf("failed to resume: %w", err)
		}
	}
	uc.saveRecord(ctx, result.Record)

	for i := result.Result.Len(); i < len(plan.Contracts); i++ {
		spec := plan.Contracts[i]

		if err := ctx.Err(); err != nil {
			return uc.fail(ctx, result, i, &domain.SubmissionError{Contract: spec.Name, Index: i, Err: err})
		}

		deployed, err := uc.deployContract(ctx, params, result, i, artifacts[i])
		if err != nil {
			return uc.fail(ctx, result, i, err)
		}

		if err := result.Result.Append(*deployed); err != nil {
			return uc.fail(ctx, result, i, err)
		}
		result.Record.Contracts = append(result.Record.Contracts, models.EntryFor(*deployed))
		uc.saveRecord(ctx, result.Record)

		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:    StageContractConfirmed,
			Current:  i + 1,
			Total:    len(plan.Contracts),
			Message:  fmt.Sprintf("%s deployed at %s", spec.Name, deployed.Address.Hex()),
			Metadata: deployed,
		})
	}

	finished := uc.now()
	result.Record.Status = models.RecordCompleted
	result.Record.FinishedAt = &finished
	uc.saveRecord(ctx, result.Record)

	uc.log.Info("plan deployed", "plan", plan.Name, "contracts", result.Result.Len(), "reused", result.Reused())
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    StagePlanCompleted,
		Current:  len(plan.Contracts),
		Total:    len(plan.Contracts),
		Metadata: result,
	})

	return result, nil
}

// deployContract takes one contract from Pending to Confirmed
func (uc *DeployPlan) deployContract(
	ctx context.Context,
	params DeployPlanParams,
	result *DeployPlanResult,
	index int,
	artifact *models.Artifact,
) (*models.DeployedContract, error) {
	spec := params.Plan.Contracts[index]
	total := len(params.Plan.Contracts)
	status := models.StatusPending

	args, err := ResolveArguments(index, spec, params.Network, result.Result)
	if err != nil {
		return nil, err
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    StageContractSubmitting,
		Current:  index + 1,
		Total:    total,
		Message:  fmt.Sprintf("Deploying %s", spec.Name),
		Spinner:  true,
		Metadata: spec,
	})

	submission, err := uc.deployer.Submit(ctx, artifact, args)
	if err != nil {
		return nil, &domain.SubmissionError{Contract: spec.Name, Index: index, Err: err}
	}
	if status, err = status.Transition(models.StatusSubmitted); err != nil {
		return nil, err
	}

	uc.log.Debug("contract submitted", "contract", spec.Name, "index", index, "tx", submission.TxHash.Hex(), "nonce", submission.Nonce)
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    StageContractSubmitted,
		Current:  index + 1,
		Total:    total,
		Message:  fmt.Sprintf("Waiting for %s (tx %s)", spec.Name, submission.TxHash.Hex()),
		Spinner:  true,
		Metadata: submission,
	})

	confirmation, err := uc.deployer.AwaitConfirmation(ctx, submission, params.ConfirmationTimeout)
	if err != nil {
		return nil, &domain.ConfirmationError{
			Contract: spec.Name,
			Index:    index,
			TxHash:   submission.TxHash.Hex(),
			Err:      err,
		}
	}
	if confirmation.Outcome != models.OutcomeConfirmed {
		confErr := &domain.ConfirmationError{
			Contract: spec.Name,
			Index:    index,
			TxHash:   submission.TxHash.Hex(),
			Outcome:  string(confirmation.Outcome),
		}
		if confirmation.Reason != "" {
			confErr.Err = errors.New(confirmation.Reason)
		}
		return nil, confErr
	}
	if status, err = status.Transition(models.StatusConfirmed); err != nil {
		return nil, err
	}

	address := confirmation.Address
	if address == (common.Address{}) {
		address = submission.Address
	}
	uc.log.Info("contract confirmed", "contract", spec.Name, "address", address.Hex(), "block", confirmation.BlockNumber, "gas_used", confirmation.GasUsed)

	return &models.DeployedContract{
		Spec:         spec,
		Address:      address,
		Index:        index,
		TxHash:       submission.TxHash,
		BlockNumber:  confirmation.BlockNumber,
		GasUsed:      confirmation.GasUsed,
		ResolvedArgs: args,
		Status:       status,
	}, nil
}

// fail closes the record of a failed run and returns the partial result
func (uc *DeployPlan) fail(ctx context.Context, result *DeployPlanResult, index int, err error) (*DeployPlanResult, error) {
	spec := result.Plan.Contracts[index]
	finished := uc.now()

	result.FailedIndex = index
	result.Err = err
	result.Record.Status = models.RecordFailed
	result.Record.FinishedAt = &finished
	result.Record.Error = err.Error()
	uc.saveRecord(ctx, result.Record)

	uc.log.Error("deployment failed", "contract", spec.Name, "index", index, "error", err)
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:    StageContractFailed,
		Current:  index + 1,
		Total:    len(result.Plan.Contracts),
		Message:  err.Error(),
		Metadata: spec,
	})

	return result, err
}

// loadArtifacts looks up every artifact of the plan and checks constructor arity
func (uc *DeployPlan) loadArtifacts(ctx context.Context, plan *models.Plan) ([]*models.Artifact, error) {
	artifacts := make([]*models.Artifact, len(plan.Contracts))
	for i, spec := range plan.Contracts {
		artifact, err := uc.artifacts.GetArtifact(ctx, spec.ArtifactName())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Name, err)
		}
		if inputs := artifact.ConstructorInputs(); len(inputs) != len(spec.Args) {
			return nil, fmt.Errorf("%s: constructor of %s takes %d arguments, plan gives %d",
				spec.Name, artifact.Name, len(inputs), len(spec.Args))
		}
		artifacts[i] = artifact
	}
	return artifacts, nil
}

// checkArguments encodes every constructor call of the plan up front, with
// contract placeholders standing in as the zero address
func (uc *DeployPlan) checkArguments(plan *models.Plan, network *models.NetworkContext, artifacts []*models.Artifact) error {
	for i, spec := range plan.Contracts {
		args := lo.Map(spec.Args, func(arg models.Argument, _ int) any {
			switch {
			case arg.Kind == models.ArgumentDeployerRef:
				return network.DeployerAddress
			case arg.IsPlaceholder():
				return common.Address{}
			default:
				return arg.Value
			}
		})
		if err := uc.deployer.CheckArguments(artifacts[i], args); err != nil {
			return fmt.Errorf("%s (#%d): %w", spec.Name, i, err)
		}
	}
	return nil
}

// reusePrevious adopts the leading contracts of the latest run that were
// deployed with the same artifact and arguments and still have code on chain
func (uc *DeployPlan) reusePrevious(ctx context.Context, result *DeployPlanResult) error {
	network, plan := result.Network, result.Plan
	if uc.records == nil {
		uc.progress.Info("No deployment records available, deploying from scratch")
		return nil
	}

	previous, err := uc.records.LatestRecord(ctx, network.ChainID, plan.Name)
	if errors.Is(err, domain.ErrNotFound) {
		uc.progress.Info(fmt.Sprintf("No previous run of %s on %s, deploying from scratch", plan.Name, network.NetworkName))
		return nil
	}
	if err != nil {
		return err
	}

	for i, spec := range plan.Contracts {
		if i >= len(previous.Contracts) {
			break
		}
		entry := previous.Contracts[i]
		if entry.Index != i || entry.Name != spec.Name || entry.Artifact != spec.ArtifactName() {
			break
		}

		args, err := ResolveArguments(i, spec, network, result.Result)
		if err != nil || !slices.Equal(entry.Args, formatArguments(args)) {
			break
		}

		hasCode, err := uc.deployer.HasCode(ctx, entry.Address)
		if err != nil {
			return fmt.Errorf("failed to check code of %s at %s: %w", spec.Name, entry.Address.Hex(), err)
		}
		if !hasCode {
			uc.log.Warn("recorded contract has no code, redeploying", "contract", spec.Name, "address", entry.Address.Hex())
			break
		}

		reused := models.DeployedContract{
			Spec:         spec,
			Address:      entry.Address,
			Index:        i,
			TxHash:       entry.TxHash,
			BlockNumber:  entry.BlockNumber,
			ResolvedArgs: args,
			Status:       models.StatusConfirmed,
			Reused:       true,
		}
		if err := result.Result.Append(reused); err != nil {
			return err
		}
		result.Record.Contracts = append(result.Record.Contracts, models.EntryFor(reused))

		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:    StageContractReused,
			Current:  i + 1,
			Total:    len(plan.Contracts),
			Message:  fmt.Sprintf("%s reused at %s", spec.Name, entry.Address.Hex()),
			Metadata: &reused,
		})
	}

	return nil
}

func (uc *DeployPlan) newRecord(network *models.NetworkContext, plan *models.Plan) *models.DeploymentRecord {
	return &models.DeploymentRecord{
		RunID:     uc.newRunID(),
		Plan:      plan.Name,
		Network:   network.NetworkName,
		ChainID:   network.ChainID,
		Deployer:  network.DeployerAddress,
		Status:    models.RecordRunning,
		StartedAt: uc.now(),
		Contracts: []models.RecordedEntry{},
	}
}

// saveRecord persists the record. A failing store never fails the run.
func (uc *DeployPlan) saveRecord(ctx context.Context, record *models.DeploymentRecord) {
	if uc.records == nil {
		return
	}
	if err := uc.records.SaveRecord(ctx, record); err != nil {
		uc.log.Warn("failed to save deployment record", "run", record.RunID, "error", err)
	}
}

// CheckReferences verifies that every contract placeholder names a contract
// deployed earlier in the plan
func CheckReferences(plan *models.Plan) error {
	position := make(map[string]int, len(plan.Contracts))
	for i, spec := range plan.Contracts {
		position[spec.Name] = i
	}

	for i, spec := range plan.Contracts {
		for j, arg := range spec.Args {
			if arg.Kind != models.ArgumentContractRef {
				continue
			}

			refErr := &domain.ArgumentResolutionError{Contract: spec.Name, Index: i, Argument: j, Ref: arg.Ref}
			at, ok := position[arg.Ref]
			switch {
			case !ok:
				refErr.Err = fmt.Errorf("no contract named %q in plan %s: %w", arg.Ref, plan.Name, domain.ErrNotFound)
			case at == i:
				refErr.Err = errors.New("contract refers to itself")
			case at > i:
				refErr.Err = fmt.Errorf("%s is deployed later (#%d)", arg.Ref, at)
			default:
				continue
			}
			return refErr
		}
	}
	return nil
}

// ResolveArguments substitutes placeholders with concrete addresses. Literal
// values are returned unchanged.
func ResolveArguments(
	index int,
	spec models.ContractSpec,
	network *models.NetworkContext,
	deployed *models.DeploymentResult,
) ([]any, error) {
	args := make([]any, len(spec.Args))
	for j, arg := range spec.Args {
		switch arg.Kind {
		case models.ArgumentDeployerRef:
			args[j] = network.DeployerAddress
		case models.ArgumentContractRef:
			address, ok := deployed.Address(arg.Ref)
			if !ok {
				return nil, &domain.ArgumentResolutionError{
					Contract: spec.Name,
					Index:    index,
					Argument: j,
					Ref:      arg.Ref,
					Err:      fmt.Errorf("%s has not been deployed: %w", arg.Ref, domain.ErrNotFound),
				}
			}
			args[j] = address
		default:
			args[j] = arg.Value
		}
	}
	return args, nil
}

func formatArguments(args []any) []string {
	return lo.Map(args, func(v any, _ int) string { return models.FormatArgument(v) })
}
