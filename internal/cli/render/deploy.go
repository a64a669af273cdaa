package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/stake-deployer/internal/domain"
	"github.com/trebuchet-org/stake-deployer/internal/domain/models"
	"github.com/trebuchet-org/stake-deployer/internal/usecase"
)

// DeployRenderer renders the outcome of a deployment run
type DeployRenderer struct {
	out  io.Writer
	json bool
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer, json bool) *DeployRenderer {
	return &DeployRenderer{out: out, json: json}
}

// DeployOutput is the JSON form of a run
type DeployOutput struct {
	RunID       string                `json:"runId,omitempty"`
	Plan        string                `json:"plan"`
	Network     string                `json:"network"`
	ChainID     uint64                `json:"chainId"`
	Deployer    string                `json:"deployer"`
	Success     bool                  `json:"success"`
	Contracts   []DeployedContractRow `json:"contracts"`
	FailedIndex *int                  `json:"failedIndex,omitempty"`
	Error       *ErrorOutput          `json:"error,omitempty"`
}

// DeployedContractRow is one confirmed contract in DeployOutput
type DeployedContractRow struct {
	Index       int      `json:"index"`
	Name        string   `json:"name"`
	Artifact    string   `json:"artifact"`
	Address     string   `json:"address"`
	TxHash      string   `json:"txHash,omitempty"`
	BlockNumber uint64   `json:"blockNumber,omitempty"`
	GasUsed     uint64   `json:"gasUsed,omitempty"`
	Args        []string `json:"args"`
	Reused      bool     `json:"reused,omitempty"`
	ExplorerURL string   `json:"explorerUrl,omitempty"`
}

// ErrorOutput is the JSON form of a failed run's error
type ErrorOutput struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// NewDeployOutput builds the JSON form of result
func NewDeployOutput(result *usecase.DeployPlanResult) DeployOutput {
	output := DeployOutput{
		Plan:      result.Plan.Name,
		Network:   result.Network.NetworkName,
		ChainID:   result.Network.ChainID,
		Deployer:  result.Network.DeployerAddress.Hex(),
		Success:   result.Success(),
		Contracts: make([]DeployedContractRow, 0, result.Result.Len()),
	}
	if result.Record != nil {
		output.RunID = result.Record.RunID
	}

	for _, c := range result.Result.Contracts {
		entry := models.EntryFor(c)
		row := DeployedContractRow{
			Index:       c.Index,
			Name:        c.Spec.Name,
			Artifact:    entry.Artifact,
			Address:     c.Address.Hex(),
			BlockNumber: c.BlockNumber,
			GasUsed:     c.GasUsed,
			Args:        entry.Args,
			Reused:      c.Reused,
			ExplorerURL: result.Network.AddressURL(c.Address),
		}
		if c.TxHash != (common.Hash{}) {
			row.TxHash = c.TxHash.Hex()
		}
		output.Contracts = append(output.Contracts, row)
	}

	if result.Err != nil {
		index := result.FailedIndex
		output.FailedIndex = &index
		output.Error = &ErrorOutput{Kind: domain.ErrorKind(result.Err), Message: result.Err.Error()}
	}
	return output
}

// Render renders the run. Per-contract progress has already been printed by
// the progress sink, so the human form is a summary.
func (r *DeployRenderer) Render(result *usecase.DeployPlanResult) error {
	if r.json {
		return writeJSON(r.out, NewDeployOutput(result))
	}

	fmt.Fprintln(r.out)
	if result.Result.Len() > 0 {
		t := newTable(table.Row{"#", "Contract", "Artifact", "Address", "Block", ""})
		for _, c := range result.Result.Contracts {
			note := ""
			if c.Reused {
				note = color.New(color.FgCyan).Sprint("reused")
			}
			t.AppendRow(table.Row{
				c.Index + 1,
				color.New(color.Bold).Sprint(c.Spec.Name),
				c.Spec.ArtifactName(),
				c.Address.Hex(),
				formatBlock(c.BlockNumber),
				note,
			})
		}
		fmt.Fprintln(r.out, t.Render())
		fmt.Fprintln(r.out)
	}

	if !result.Success() && result.FailedIndex >= 0 {
		spec := result.Plan.Contracts[result.FailedIndex]
		fmt.Fprintln(r.out, FormatError(fmt.Sprintf("Deployment of %s failed at %s (%d/%d)",
			result.Plan.Name, spec.Name, result.FailedIndex+1, len(result.Plan.Contracts))))
		fmt.Fprintf(r.out, "   %s\n", DescribeError(result.Err))
		if skipped := len(result.Plan.Contracts) - result.FailedIndex - 1; skipped > 0 {
			fmt.Fprintf(r.out, "   %d later contract(s) were not submitted\n", skipped)
		}
		return nil
	}

	summary := fmt.Sprintf("Deployed %s on %s: %d contract(s)", result.Plan.Name, result.Network.NetworkName, result.Result.Len())
	if reused := result.Reused(); reused > 0 {
		summary += fmt.Sprintf(", %d reused", reused)
	}
	fmt.Fprintln(r.out, FormatSuccess(summary))

	if result.Network.ExplorerURL != "" {
		for _, c := range result.Result.Contracts {
			fmt.Fprintf(r.out, "   %s %s\n", c.Spec.Name, color.New(color.Faint).Sprint(result.Network.AddressURL(c.Address)))
		}
	}
	return nil
}

// RenderError renders an error that stopped the run before any result existed
func (r *DeployRenderer) RenderError(err error) error {
	if r.json {
		return writeJSON(r.out, DeployOutput{
			Contracts: []DeployedContractRow{},
			Error:     &ErrorOutput{Kind: domain.ErrorKind(err), Message: err.Error()},
		})
	}
	fmt.Fprintln(r.out, DescribeError(err))
	return nil
}

func formatBlock(block uint64) string {
	if block == 0 {
		return "-"
	}
	return strconv.FormatUint(block, 10)
}

var _ Renderer[*usecase.DeployPlanResult] = (*DeployRenderer)(nil)
