package orchestrator

import (
	"context"
	"io"

	"github.com/elC0mpa/azure-storage-doctor/config"
	"github.com/elC0mpa/azure-storage-doctor/model"
	"github.com/elC0mpa/azure-storage-doctor/service"
	"github.com/elC0mpa/azure-storage-doctor/service/progress"
	"go.uber.org/zap"
)

type orchestratorService struct {
	accounts  service.AccountInventory
	disks     service.DiskInventory
	usage     service.UsageService
	pricing   service.ScenarioPricer
	identity  service.IdentityService
	openStore func(path string) (progress.ProgressService, error)
	cfg       config.Config
	out       io.Writer
	logger    *zap.Logger
}

// Gateways bundles the collaborators of a comparison run
type Gateways struct {
	Accounts service.AccountInventory
	Disks    service.DiskInventory
	Usage    service.UsageService
	Pricing  service.ScenarioPricer
	Identity service.IdentityService
}

// OrchestratorService runs one comparison report end to end
type OrchestratorService interface {
	Orchestrate(ctx context.Context, flags model.Flags) error
}
