package progress

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/stake-deployer/internal/domain/models"
	"github.com/trebuchet-org/stake-deployer/internal/usecase"
)

// DeployProgress prints one line per contract as a plan is deployed
type DeployProgress struct {
	out     io.Writer
	spinner *Spinner
}

// NewDeployProgress creates a new deploy progress reporter
func NewDeployProgress(out io.Writer) *DeployProgress {
	return &DeployProgress{
		out:     out,
		spinner: NewSpinner(out),
	}
}

// OnProgress handles progress events of network resolution and plan deployment
func (p *DeployProgress) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	counter := fmt.Sprintf("[%d/%d]", event.Current, event.Total)

	switch event.Stage {
	case usecase.StageNetworkResolved:
		network, ok := event.Metadata.(*models.NetworkContext)
		if !ok {
			return
		}
		fmt.Fprintf(p.out, "%s %s\n", color.New(color.Bold).Sprint("Network: "), network.NetworkName)
		fmt.Fprintf(p.out, "%s %d\n", color.New(color.Bold).Sprint("Chain ID:"), network.ChainID)
		fmt.Fprintf(p.out, "%s %s\n\n", color.New(color.Bold).Sprint("Deployer:"), network.DeployerAddress.Hex())

	case usecase.StageContractReused:
		p.spinner.Stop()
		fmt.Fprintf(p.out, "%s %s %s\n", counter, color.New(color.FgCyan).Sprint("↺"), event.Message)

	case usecase.StageContractSubmitting, usecase.StageContractSubmitted:
		p.spinner.Start(fmt.Sprintf("%s %s", counter, event.Message))

	case usecase.StageContractConfirmed:
		p.spinner.Stop()
		line := event.Message
		if deployed, ok := event.Metadata.(*models.DeployedContract); ok {
			line = fmt.Sprintf("%s %s", color.New(color.Bold).Sprint(deployed.Spec.Name), deployed.Address.Hex())
			if deployed.BlockNumber > 0 {
				line += color.New(color.Faint).Sprintf(" (block %d)", deployed.BlockNumber)
			}
		}
		fmt.Fprintf(p.out, "%s %s %s\n", counter, color.New(color.FgGreen).Sprint("✓"), line)

	case usecase.StageContractFailed:
		p.spinner.Stop()
		name := ""
		if spec, ok := event.Metadata.(models.ContractSpec); ok {
			name = spec.Name + ": "
		}
		fmt.Fprintf(p.out, "%s %s %s%s\n", counter, color.New(color.FgRed).Sprint("✗"), name, event.Message)

	case usecase.StagePlanCompleted:
		p.spinner.Stop()
	}
}

// Info prints an info message
func (p *DeployProgress) Info(message string) {
	resume := p.spinner.Pause()
	defer resume()
	color.New(color.FgCyan).Fprintln(p.out, message)
}

// Error prints an error message
func (p *DeployProgress) Error(message string) {
	resume := p.spinner.Pause()
	defer resume()
	color.New(color.FgRed).Fprintln(p.out, message)
}

// Ensure DeployProgress implements ProgressSink
var _ usecase.ProgressSink = (*DeployProgress)(nil)
