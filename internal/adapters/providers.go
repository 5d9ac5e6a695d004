package adapters

import (
	"log/slog"

	"github.com/google/wire"
	"github.com/spf13/afero"
	"github.com/trebuchet-org/proxy-deploy/internal/adapters/blockchain"
	"github.com/trebuchet-org/proxy-deploy/internal/adapters/contracts"
	"github.com/trebuchet-org/proxy-deploy/internal/adapters/forge"
	"github.com/trebuchet-org/proxy-deploy/internal/adapters/fs"
	"github.com/trebuchet-org/proxy-deploy/internal/adapters/interactive"
	"github.com/trebuchet-org/proxy-deploy/internal/adapters/progress"
	internalconfig "github.com/trebuchet-org/proxy-deploy/internal/config"
	"github.com/trebuchet-org/proxy-deploy/internal/domain/config"
	"github.com/trebuchet-org/proxy-deploy/internal/usecase"
)

// ProvideFs provides the OS filesystem
func ProvideFs() afero.Fs {
	return afero.NewOsFs()
}

// ProvideClient provides the lazily connected chain client and its cleanup
func ProvideClient(cfg *config.RuntimeConfig, log *slog.Logger) (*blockchain.Client, func()) {
	client := blockchain.NewClient(cfg, log)
	return client, client.Close
}

// ProvideNetworkResolver provides a resolver over the foundry.toml endpoints
func ProvideNetworkResolver(cfg *config.RuntimeConfig) *internalconfig.NetworkResolver {
	return internalconfig.NewNetworkResolver(cfg.FoundryConfig, "")
}

// ProvideProgressSink exposes the reporter as a marker sink
func ProvideProgressSink(r progress.Reporter) usecase.ProgressSink {
	return r
}

// ProvideStageReporter exposes the reporter as a stage observer
func ProvideStageReporter(r progress.Reporter) usecase.StageReporter {
	return r
}

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	ProvideFs,

	fs.NewEnvFileStore,
	wire.Bind(new(usecase.DeploymentRecordStore), new(*fs.EnvFileStore)),

	contracts.NewArtifactRepository,
	wire.Bind(new(usecase.ContractRepository), new(*contracts.ArtifactRepository)),
)

// ForgeSet provides forge-based implementations
var ForgeSet = wire.NewSet(
	forge.NewForgeAdapter,
	wire.Bind(new(usecase.ContractBuilder), new(*forge.ForgeAdapter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewConfirmerAdapter,
	wire.Bind(new(usecase.Confirmer), new(*interactive.ConfirmerAdapter)),
)

// ProgressSet provides terminal progress output
var ProgressSet = wire.NewSet(
	progress.NewReporter,
	ProvideProgressSink,
	ProvideStageReporter,
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	ProvideNetworkResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolver)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	ProvideClient,
	wire.Bind(new(blockchain.BackendProvider), new(*blockchain.Client)),
	blockchain.NewSigner,

	blockchain.NewDeployer,
	wire.Bind(new(usecase.ProxyDeployer), new(*blockchain.Deployer)),

	blockchain.NewInspector,
	wire.Bind(new(usecase.ImplementationInspector), new(*blockchain.Inspector)),

	blockchain.NewInitializer,
	wire.Bind(new(usecase.ProxyInitializer), new(*blockchain.Initializer)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	ForgeSet,
	InteractiveSet,
	ProgressSet,
	ConfigSet,
	BlockchainSet,
)
