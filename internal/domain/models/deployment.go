package models

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ContractStatus is the lifecycle state of a single contract deployment
type ContractStatus string

const (
	StatusPending   ContractStatus = "PENDING"
	StatusSubmitted ContractStatus = "SUBMITTED"
	StatusConfirmed ContractStatus = "CONFIRMED"
	StatusFailed    ContractStatus = "FAILED"
)

// CanTransition reports whether from -> to is a legal step.
// Pending -> Submitted -> Confirmed | Failed, nothing else.
func (s ContractStatus) CanTransition(to ContractStatus) bool {
	switch s {
	case StatusPending:
		return to == StatusSubmitted
	case StatusSubmitted:
		return to == StatusConfirmed || to == StatusFailed
	default:
		return false
	}
}

// Transition returns to when from -> to is legal, otherwise an error
func (s ContractStatus) Transition(to ContractStatus) (ContractStatus, error) {
	if s.IsTerminal() {
		return s, fmt.Errorf("contract is already %s", s)
	}
	if !s.CanTransition(to) {
		return s, fmt.Errorf("illegal status transition %s -> %s", s, to)
	}
	return to, nil
}

// IsTerminal reports whether no further transitions exist
func (s ContractStatus) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusFailed
}

// ConfirmationOutcome is the typed result of waiting for a deployment
type ConfirmationOutcome string

const (
	OutcomeConfirmed ConfirmationOutcome = "confirmed"
	OutcomeFailed    ConfirmationOutcome = "failed"
	OutcomeTimedOut  ConfirmationOutcome = "timed out"
)

// Submission is a contract-creation transaction that was accepted by the network
type Submission struct {
	TxHash  common.Hash
	Address common.Address // address the contract will be created at
	Nonce   uint64
}

// Confirmation is what the network reported about a submission
type Confirmation struct {
	Outcome     ConfirmationOutcome
	Address     common.Address
	BlockNumber uint64
	GasUsed     uint64
	Reason      string
}

// DeployedContract is a contract whose deployment was confirmed on chain
type DeployedContract struct {
	Spec         ContractSpec   `json:"spec"`
	Address      common.Address `json:"address"`
	Index        int            `json:"index"`
	TxHash       common.Hash    `json:"txHash"`
	BlockNumber  uint64         `json:"blockNumber"`
	GasUsed      uint64         `json:"gasUsed,omitempty"`
	ResolvedArgs []any          `json:"resolvedArgs"`
	Status       ContractStatus `json:"status"`
	// Reused is set when the contract was taken from a previous run in resume mode
	Reused bool `json:"reused,omitempty"`
}

// DeploymentResult is the ordered list of confirmed contracts of a run
type DeploymentResult struct {
	Contracts []DeployedContract `json:"contracts"`
}

// Len returns the number of confirmed contracts
func (r *DeploymentResult) Len() int {
	return len(r.Contracts)
}

// Address looks up the address of a previously deployed contract by spec name
func (r *DeploymentResult) Address(name string) (common.Address, bool) {
	for _, c := range r.Contracts {
		if c.Spec.Name == name {
			return c.Address, true
		}
	}
	return common.Address{}, false
}

// Append records a confirmed contract. Contracts must be appended in plan order.
func (r *DeploymentResult) Append(c DeployedContract) error {
	if c.Index != len(r.Contracts) {
		return fmt.Errorf("contract %s recorded out of order: index %d, expected %d", c.Spec.Name, c.Index, len(r.Contracts))
	}
	if c.Status != StatusConfirmed {
		return fmt.Errorf("contract %s is %s, only confirmed contracts can be recorded", c.Spec.Name, c.Status)
	}
	r.Contracts = append(r.Contracts, c)
	return nil
}

// RecordStatus is the status of a persisted deployment run
type RecordStatus string

const (
	RecordRunning   RecordStatus = "running"
	RecordCompleted RecordStatus = "completed"
	RecordFailed    RecordStatus = "failed"
)

// DeploymentRecord is the persisted trace of one run of a plan on one chain
type DeploymentRecord struct {
	RunID      string          `json:"runId"`
	Plan       string          `json:"plan"`
	Network    string          `json:"network"`
	ChainID    uint64          `json:"chainId"`
	Deployer   common.Address  `json:"deployer"`
	Status     RecordStatus    `json:"status"`
	StartedAt  time.Time       `json:"startedAt"`
	FinishedAt *time.Time      `json:"finishedAt,omitempty"`
	Contracts  []RecordedEntry `json:"contracts"`
	Error      string          `json:"error,omitempty"`
}

// RecordedEntry is a confirmed contract inside a DeploymentRecord
type RecordedEntry struct {
	Index       int            `json:"index"`
	Name        string         `json:"name"`
	Artifact    string         `json:"artifact"`
	Address     common.Address `json:"address"`
	TxHash      common.Hash    `json:"txHash"`
	BlockNumber uint64         `json:"blockNumber"`
	Args        []string       `json:"args"`
}

// EntryFor builds the persisted form of a confirmed contract
func EntryFor(c DeployedContract) RecordedEntry {
	args := make([]string, len(c.ResolvedArgs))
	for i, v := range c.ResolvedArgs {
		args[i] = FormatArgument(v)
	}
	return RecordedEntry{
		Index:       c.Index,
		Name:        c.Spec.Name,
		Artifact:    c.Spec.ArtifactName(),
		Address:     c.Address,
		TxHash:      c.TxHash,
		BlockNumber: c.BlockNumber,
		Args:        args,
	}
}

// FormatArgument renders a constructor value the same way regardless of the
// Go type it was decoded into
func FormatArgument(v any) string {
	switch val := v.(type) {
	case nil:
		return "<nil>"
	case common.Address:
		return val.Hex()
	case *common.Address:
		return val.Hex()
	case *big.Int:
		return val.String()
	case []byte:
		return hexutil.Encode(val)
	case string:
		if common.IsHexAddress(val) {
			return common.HexToAddress(val).Hex()
		}
		return val
	default:
		return fmt.Sprint(val)
	}
}
