package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/stake-deployer/internal/domain/models"
	"github.com/trebuchet-org/stake-deployer/internal/usecase"
)

// HistoryRenderer renders past deployment runs
type HistoryRenderer struct {
	out  io.Writer
	json bool
}

// NewHistoryRenderer creates a new history renderer
func NewHistoryRenderer(out io.Writer, json bool) *HistoryRenderer {
	return &HistoryRenderer{out: out, json: json}
}

// Render renders the runs, newest first
func (r *HistoryRenderer) Render(result *usecase.ShowHistoryResult) error {
	if r.json {
		records := result.Records
		if records == nil {
			records = []*models.DeploymentRecord{}
		}
		return writeJSON(r.out, records)
	}

	if len(result.Records) == 0 {
		fmt.Fprintf(r.out, "No deployments recorded on %s (chain %d)\n", result.NetworkName, result.ChainID)
		return nil
	}

	fmt.Fprintf(r.out, "📜 Deployments on %s (chain %d):\n\n", result.NetworkName, result.ChainID)

	for _, record := range result.Records {
		fmt.Fprintf(r.out, "%s  %s  %s  %s\n",
			formatRecordStatus(record.Status),
			color.New(color.Bold).Sprint(record.Plan),
			record.StartedAt.Local().Format(time.DateTime),
			color.New(color.Faint).Sprint(record.RunID),
		)

		if len(record.Contracts) > 0 {
			t := newTable(table.Row{"#", "Contract", "Address", "Args"})
			for _, entry := range record.Contracts {
				t.AppendRow(table.Row{entry.Index + 1, entry.Name, entry.Address.Hex(), strings.Join(entry.Args, ", ")})
			}
			for _, line := range strings.Split(t.Render(), "\n") {
				fmt.Fprintf(r.out, "    %s\n", line)
			}
		}
		if record.Error != "" {
			fmt.Fprintf(r.out, "    %s\n", color.New(color.FgRed).Sprint(record.Error))
		}
		fmt.Fprintln(r.out)
	}

	return nil
}

func formatRecordStatus(status models.RecordStatus) string {
	switch status {
	case models.RecordCompleted:
		return color.New(color.FgGreen).Sprintf("%-9s", status)
	case models.RecordFailed:
		return color.New(color.FgRed).Sprintf("%-9s", status)
	default:
		return color.New(color.FgYellow).Sprintf("%-9s", status)
	}
}

var _ Renderer[*usecase.ShowHistoryResult] = (*HistoryRenderer)(nil)
