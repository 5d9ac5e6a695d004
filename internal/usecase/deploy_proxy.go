package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/proxy-deploy/internal/domain"
	"github.com/trebuchet-org/proxy-deploy/internal/domain/config"
)

const (
	// DefaultProxyContract is the artifact deployed in front of the implementation
	DefaultProxyContract = "ERC1967Proxy"
	// DefaultInitMethod is the post-deploy initializer invoked through the proxy
	DefaultInitMethod = "_init"
)

// DeployProxyParams contains parameters for deploying an upgradeable proxy
type DeployProxyParams struct {
	ContractName  string
	ProxyContract string
	InitMethod    string
	SkipConfirm   bool
}

// DeployProxyResult contains the outcome of a pipeline run
type DeployProxyResult struct {
	Target                domain.DeploymentTarget
	Contract              string
	Stage                 domain.Stage
	ProxyAddress          common.Address
	ImplementationAddress common.Address
	ImplementationTxHash  common.Hash
	ProxyTxHash           common.Hash
	InitTxHash            common.Hash
	RecordPath            string
	PreviousAddress       string
}

// DeployProxy deploys a UUPS proxy, initializes it and records its address
type DeployProxy struct {
	config      *config.RuntimeConfig
	contracts   ContractRepository
	builder     ContractBuilder
	deployer    ProxyDeployer
	inspector   ImplementationInspector
	initializer ProxyInitializer
	records     DeploymentRecordStore
	confirmer   Confirmer
	reporter    StageReporter
	progress    ProgressSink
	log         *slog.Logger
}

// NewDeployProxy creates a new DeployProxy use case
func NewDeployProxy(
	cfg *config.RuntimeConfig,
	contracts ContractRepository,
	builder ContractBuilder,
	deployer ProxyDeployer,
	inspector ImplementationInspector,
	initializer ProxyInitializer,
	records DeploymentRecordStore,
	confirmer Confirmer,
	reporter StageReporter,
	progress ProgressSink,
	log *slog.Logger,
) *DeployProxy {
	return &DeployProxy{
		config:      cfg,
		contracts:   contracts,
		builder:     builder,
		deployer:    deployer,
		inspector:   inspector,
		initializer: initializer,
		records:     records,
		confirmer:   confirmer,
		reporter:    reporter,
		progress:    progress,
		log:         log.With("component", "DeployProxy"),
	}
}

// Run executes the pipeline. Stages run strictly in order and the first failure
// ends the run in the Failed stage without persisting anything.
func (uc *DeployProxy) Run(ctx context.Context, params DeployProxyParams) (*DeployProxyResult, error) {
	if params.ContractName == "" {
		return nil, fmt.Errorf("contract name is required")
	}
	if params.ProxyContract == "" {
		params.ProxyContract = DefaultProxyContract
	}
	if params.InitMethod == "" {
		params.InitMethod = DefaultInitMethod
	}
	if uc.config.Network == nil {
		return nil, fmt.Errorf("no network selected, --network flag is required")
	}

	result := &DeployProxyResult{
		Target: domain.DeploymentTarget{
			Network: uc.config.Network.Name,
			RPCURL:  uc.config.Network.RPCURL,
			ChainID: uc.config.Network.ChainID,
		},
		Contract: params.ContractName,
	}
	uc.enter(ctx, result, domain.StageStart)

	if err := uc.prepare(ctx, params, result); err != nil {
		return result, uc.fail(ctx, result, err)
	}

	// Deploying
	uc.enter(ctx, result, domain.StageDeploying)
	if uc.config.Build {
		if err := uc.builder.Build(ctx); err != nil {
			return result, uc.fail(ctx, result, err)
		}
	}
	implementation, err := uc.contracts.GetContract(ctx, params.ContractName)
	if err != nil {
		return result, uc.fail(ctx, result, err)
	}
	proxy, err := uc.contracts.GetContract(ctx, params.ProxyContract)
	if err != nil {
		return result, uc.fail(ctx, result, err)
	}
	deployment, err := uc.deployer.Deploy(ctx, implementation, proxy)
	if err != nil {
		return result, uc.fail(ctx, result, err)
	}
	result.ImplementationTxHash = deployment.ImplementationTxHash
	result.ProxyTxHash = deployment.ProxyTxHash
	if err := uc.deployer.Confirm(ctx, deployment); err != nil {
		return result, uc.fail(ctx, result, err)
	}
	if !deployment.Confirmed() {
		return result, uc.fail(ctx, result, domain.ErrNotConfirmed)
	}

	// Confirmed
	uc.enter(ctx, result, domain.StageConfirmed)
	result.ProxyAddress = deployment.Address
	uc.progress.Info(fmt.Sprintf("proxy deployed to: %s on %s", deployment.Address.Hex(), result.Target.Network))

	// Inspecting
	uc.enter(ctx, result, domain.StageInspecting)
	impl, err := uc.inspector.ImplementationAddress(ctx, deployment.Address)
	if err != nil {
		return result, uc.fail(ctx, result, err)
	}
	result.ImplementationAddress = impl
	uc.progress.Info(fmt.Sprintf("New implementation address: %s", impl.Hex()))

	// Initializing
	uc.enter(ctx, result, domain.StageInitializing)
	uc.progress.Info("running post deploy")
	initTx, err := uc.initializer.Initialize(ctx, deployment, implementation, params.InitMethod)
	if err != nil {
		return result, uc.fail(ctx, result, err)
	}
	result.InitTxHash = initTx

	// Persisting
	uc.enter(ctx, result, domain.StagePersisting)
	record := domain.NewDeploymentRecord(deployment.Address)
	path, err := uc.records.Write(ctx, result.Target, record)
	if err != nil {
		return result, uc.fail(ctx, result, err)
	}
	result.RecordPath = path
	if err := uc.records.Reload(ctx, result.Target); err != nil {
		return result, uc.fail(ctx, result, err)
	}
	uc.progress.Info(fmt.Sprintf("%s added", os.Getenv(record.Key)))

	uc.enter(ctx, result, domain.StageDone)
	return result, nil
}

// prepare inspects any previous record and asks for confirmation before broadcasting
func (uc *DeployProxy) prepare(ctx context.Context, params DeployProxyParams, result *DeployProxyResult) error {
	previous, err := uc.records.Read(ctx, result.Target)
	if err != nil {
		return fmt.Errorf("failed to read existing deployment record: %w", err)
	}
	if previous != nil && previous.Value != "" {
		result.PreviousAddress = previous.Value
		uc.progress.Warn(fmt.Sprintf("%s already records %s=%s, a new proxy will be deployed and the record replaced",
			result.Target.RecordFileName(), previous.Key, previous.Value))
	}

	if params.SkipConfirm || uc.config.NonInteractive {
		return nil
	}
	ok, err := uc.confirmer.Confirm(ctx, fmt.Sprintf("Deploy %s behind a new %s on %s (chain %d)",
		params.ContractName, params.ProxyContract, result.Target.Network, result.Target.ChainID))
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrAborted
	}
	return nil
}

func (uc *DeployProxy) enter(ctx context.Context, result *DeployProxyResult, next domain.Stage) {
	if result.Stage != "" && !result.Stage.CanTransition(next) {
		panic(fmt.Sprintf("invalid pipeline transition %s -> %s", result.Stage, next))
	}
	uc.log.Debug("entering stage", "from", result.Stage, "to", next)
	result.Stage = next
	uc.reporter.ReportStage(ctx, next)
}

func (uc *DeployProxy) fail(ctx context.Context, result *DeployProxyResult, err error) error {
	failed := result.Stage
	uc.enter(ctx, result, domain.StageFailed)
	return &domain.StageError{Stage: failed, Err: err}
}
