package models

import (
	"github.com/ethereum/go-ethereum/common"
)

// NetworkContext is the resolved network and signing identity of a run.
// It is created once by the resolver and only read afterwards.
type NetworkContext struct {
	ChainID         uint64         `json:"chainId"`
	NetworkName     string         `json:"network"`
	DeployerAddress common.Address `json:"deployer"`
	RPCURL          string         `json:"-"`
	ExplorerURL     string         `json:"explorerUrl,omitempty"`
}

// AddressURL returns an explorer link for addr, or "" when no explorer is known
func (n *NetworkContext) AddressURL(addr common.Address) string {
	if n == nil || n.ExplorerURL == "" {
		return ""
	}
	return n.ExplorerURL + "/address/" + addr.Hex()
}
