package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/stake-deployer/internal/config"
	domainconfig "github.com/trebuchet-org/stake-deployer/internal/domain/config"
	"github.com/trebuchet-org/stake-deployer/internal/usecase"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config   *domainconfig.RuntimeConfig
	resolver *config.NetworkResolver
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *domainconfig.RuntimeConfig, resolver *config.NetworkResolver) *SelectorAdapter {
	return &SelectorAdapter{config: cfg, resolver: resolver}
}

// SelectNetwork asks the user to pick one of the configured networks
func (s *SelectorAdapter) SelectNetwork(ctx context.Context, networks []string) (string, error) {
	if s.config.NonInteractive {
		return "", fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	if len(networks) == 0 {
		return "", fmt.Errorf("no networks provided for selection")
	}

	if len(networks) == 1 {
		return networks[0], nil
	}

	options := s.formatNetworkOptions(networks)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             "Select a network",
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(networks),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled: %w", err)
	}

	return networks[index], nil
}

// formatNetworkOptions renders "name (chain N)", flagging networks without a chain ID
func (s *SelectorAdapter) formatNetworkOptions(networks []string) []string {
	options := make([]string, len(networks))
	for i, name := range networks {
		label := color.New(color.FgWhite, color.Bold).Sprint(name)

		network, err := s.resolver.Resolve(name)
		switch {
		case err != nil:
			options[i] = label
		case network.HasChainID():
			options[i] = fmt.Sprintf("%s (%s)", label, color.New(color.FgBlue).Sprintf("chain %d", *network.ChainID))
		default:
			options[i] = fmt.Sprintf("%s %s", label, color.New(color.FgYellow).Sprint("[no chain_id]"))
		}
	}
	return options
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.NetworkSelector = (*SelectorAdapter)(nil)
