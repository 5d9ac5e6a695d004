package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/proxy-deploy/internal/domain"
	"github.com/trebuchet-org/proxy-deploy/internal/domain/config"
	"github.com/trebuchet-org/proxy-deploy/internal/domain/models"
)

// ContractRepository resolves contract names to compiled artifacts
type ContractRepository interface {
	GetContract(ctx context.Context, name string) (*models.Contract, error)
	ListContractNames(ctx context.Context) ([]string, error)
}

// ContractBuilder compiles the project before artifacts are resolved
type ContractBuilder interface {
	Build(ctx context.Context) error
}

// ProxyDeployer deploys an implementation behind a new ERC-1967 proxy
type ProxyDeployer interface {
	// Deploy submits the implementation and proxy creations and returns the pending proxy
	Deploy(ctx context.Context, implementation, proxy *models.Contract) (*domain.ProxyDeployment, error)
	// Confirm blocks until the proxy creation is mined and marks the deployment confirmed
	Confirm(ctx context.Context, deployment *domain.ProxyDeployment) error
}

// ImplementationInspector reads the implementation address behind a proxy
type ImplementationInspector interface {
	ImplementationAddress(ctx context.Context, proxy common.Address) (common.Address, error)
}

// ProxyInitializer issues the post-deploy initialization call on a proxy
type ProxyInitializer interface {
	Initialize(ctx context.Context, deployment *domain.ProxyDeployment, implementation *models.Contract, method string) (common.Hash, error)
}

// DeploymentRecordStore persists the proxy address for a network
type DeploymentRecordStore interface {
	// Read returns the existing record for the target, or nil if none exists
	Read(ctx context.Context, target domain.DeploymentTarget) (*domain.DeploymentRecord, error)
	// Write replaces the record file for the target and returns its path
	Write(ctx context.Context, target domain.DeploymentTarget, record domain.DeploymentRecord) (string, error)
	// Reload loads the record file for the target into the process environment
	Reload(ctx context.Context, target domain.DeploymentTarget) error
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
}

// Confirmer asks the operator to approve a broadcast
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// Progress tracking interfaces

// ProgressSink receives the human readable stage markers
type ProgressSink interface {
	Info(message string)
	Warn(message string)
}

// StageReporter observes pipeline state transitions
type StageReporter interface {
	ReportStage(ctx context.Context, stage domain.Stage)
}
