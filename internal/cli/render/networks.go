package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/stake-deployer/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// RenderNetworksList renders the configured networks with their chain IDs
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in deployer.toml [networks]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	t := newTable(table.Row{"", "Network", "Chain ID", "RPC"})
	for _, network := range result.Networks {
		switch {
		case network.Error != nil:
			t.AppendRow(table.Row{"❌", network.Name, color.New(color.FgRed).Sprintf("error: %v", network.Error), ""})
		case !network.Deployable():
			t.AppendRow(table.Row{"⚠️", network.Name, color.New(color.FgYellow).Sprint("missing"), network.RPCURL})
		default:
			t.AppendRow(table.Row{"✅", network.Name, *network.ChainID, network.RPCURL})
		}
	}
	fmt.Fprintln(r.out, t.Render())

	return nil
}
