package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/stake-deployer/internal/usecase"
)

// InitRenderer renders init command results
type InitRenderer struct {
	out io.Writer
}

// NewInitRenderer creates a new init renderer
func NewInitRenderer(out io.Writer) *InitRenderer {
	return &InitRenderer{out: out}
}

// Render renders the init project result
func (r *InitRenderer) Render(result *usecase.InitProjectResult) error {
	for _, step := range result.Steps {
		if step.Success {
			msg := step.Name
			if step.Message != "" {
				msg = step.Message
			}
			color.New(color.FgGreen).Fprintf(r.out, "✅ %s\n", msg)
			continue
		}

		color.New(color.FgRed).Fprintf(r.out, "❌ %s\n", step.Name)
		if step.Message != "" {
			fmt.Fprintf(r.out, "   %s\n", step.Message)
		}
		if step.Error != nil {
			fmt.Fprintf(r.out, "   %s\n", step.Error.Error())
		}
	}

	for _, step := range result.Steps {
		if !step.Success {
			return nil
		}
	}
	r.printSuccessMessage(result)
	return nil
}

func (r *InitRenderer) printSuccessMessage(result *usecase.InitProjectResult) {
	fmt.Fprintln(r.out)
	if result.AlreadyInitialized {
		color.New(color.FgYellow).Fprintln(r.out, "⚠️  stake-deployer was already initialized in this project")
	} else {
		color.New(color.FgGreen, color.Bold).Fprintln(r.out, "🎉 stake-deployer initialized successfully!")
	}

	fmt.Fprintln(r.out)
	color.New(color.FgCyan, color.Bold).Fprintln(r.out, "📋 Next steps:")

	fmt.Fprintln(r.out, "1. Copy .env.example to .env and set PRIVATE_KEY for your deployment wallet")
	fmt.Fprintln(r.out)

	fmt.Fprintln(r.out, "2. Check the [networks] of deployer.toml:")
	fmt.Fprintln(r.out, "   • every network you deploy to needs a chain_id and an rpc_url")
	fmt.Fprintln(r.out)

	fmt.Fprintln(r.out, "3. Compile your contracts and point [artifacts] dir at the output")
	fmt.Fprintln(r.out)

	fmt.Fprintln(r.out, "4. Review deploy.yaml and deploy:")
	color.New(color.FgHiBlack).Fprintln(r.out, "   stake-deployer deploy --network sepolia")
	fmt.Fprintln(r.out)

	fmt.Fprintln(r.out, "5. Inspect past runs:")
	color.New(color.FgHiBlack).Fprintln(r.out, "   stake-deployer history --network sepolia")
}

var _ Renderer[*usecase.InitProjectResult] = (*InitRenderer)(nil)
