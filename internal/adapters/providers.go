package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/stake-deployer/internal/adapters/artifacts"
	"github.com/trebuchet-org/stake-deployer/internal/adapters/blockchain"
	internalconfig "github.com/trebuchet-org/stake-deployer/internal/adapters/config"
	"github.com/trebuchet-org/stake-deployer/internal/adapters/fs"
	"github.com/trebuchet-org/stake-deployer/internal/adapters/interactive"
	"github.com/trebuchet-org/stake-deployer/internal/adapters/repository/deployments"
	"github.com/trebuchet-org/stake-deployer/internal/adapters/signer"
	"github.com/trebuchet-org/stake-deployer/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewFileWriterAdapter,
	wire.Bind(new(usecase.FileWriter), new(*fs.FileWriterAdapter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.NetworkSelector), new(*interactive.SelectorAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),
)

// SignerSet provides the deployer identity
var SignerSet = wire.NewSet(
	signer.NewKeyedSigner,
	wire.Bind(new(usecase.SignerProvider), new(*signer.KeyedSigner)),
	wire.Bind(new(blockchain.TransactorProvider), new(*signer.KeyedSigner)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewDeployerAdapter,
	wire.Bind(new(usecase.ContractDeployer), new(*blockchain.DeployerAdapter)),
)

// ArtifactsSet provides compiled contract lookup
var ArtifactsSet = wire.NewSet(
	artifacts.NewRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*artifacts.Repository)),
)

// RecordsSet provides deployment record persistence
var RecordsSet = wire.NewSet(
	deployments.NewFileRepositoryFromConfig,
	wire.Bind(new(usecase.DeploymentRecordStore), new(*deployments.FileRepository)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	InteractiveSet,
	ConfigSet,
	SignerSet,
	BlockchainSet,
	ArtifactsSet,
	RecordsSet,
)
