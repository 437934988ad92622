package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/elC0mpa/azure-storage-doctor/config"
	"github.com/elC0mpa/azure-storage-doctor/model"
	"github.com/elC0mpa/azure-storage-doctor/service/progress"
	"github.com/elC0mpa/azure-storage-doctor/utils"
	"go.uber.org/zap"
)

func NewService(gateways Gateways, cfg config.Config, out io.Writer, logger *zap.Logger) *orchestratorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if out == nil {
		out = os.Stdout
	}

	return &orchestratorService{
		accounts: gateways.Accounts,
		disks:    gateways.Disks,
		usage:    gateways.Usage,
		pricing:  gateways.Pricing,
		identity: gateways.Identity,
		openStore: func(path string) (progress.ProgressService, error) {
			return progress.NewService(path, logger)
		},
		cfg:    cfg,
		out:    out,
		logger: logger,
	}
}

// Orchestrate prices every resource of the input list that the progress
// store does not already hold, then renders the whole table.
func (s *orchestratorService) Orchestrate(ctx context.Context, flags model.Flags) error {
	refs, err := loadRefs(flags.InputFile)
	if err != nil {
		return err
	}

	path := flags.ResultsFile
	if path == "" {
		path = s.cfg.ResultsFile(flags.Report)
	}

	store, err := s.openStore(path)
	if err != nil {
		return err
	}
	if flags.Fresh {
		if err := store.Reset(); err != nil {
			return err
		}
	}

	if err := s.priceAll(ctx, flags.Report, refs, store); err != nil {
		return err
	}

	utils.StopSpinner()

	rows := store.Rows()
	account := s.accountName(ctx, flags.Subscription)
	utils.DrawComparisonTable(s.out, account, flags.Report, s.cfg.Pricing.Currency, rows)
	if flags.Chart {
		utils.DrawScenarioChart(s.out, flags.Report, s.cfg.Pricing.Currency, rows)
	}

	return nil
}

func (s *orchestratorService) priceAll(ctx context.Context, kind model.ReportKind, refs []model.ResourceRef, store progress.ProgressService) error {
	for i, ref := range refs {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := ref.Validate(); err != nil {
			s.logger.Warn("skipping input entry", zap.Int("index", i), zap.Error(err))
			continue
		}
		if store.Has(ref.Key()) {
			s.logger.Debug("already priced", zap.String("resource", ref.Key()))
			continue
		}

		var row model.ResultRow
		if kind == model.ReportDisk {
			row = s.diskRow(ctx, ref)
		} else {
			row = s.blobRow(ctx, ref)
		}
		// an interrupted resource is left unrecorded so the next run retries it
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := store.Append(row); err != nil {
			return fmt.Errorf("failed to record %s: %w", ref.Key(), err)
		}
		s.logger.Info("resource priced", zap.String("resource", ref.Key()), zap.Strings("prices", row.Prices))
	}
	return nil
}

func (s *orchestratorService) blobRow(ctx context.Context, ref model.ResourceRef) model.ResultRow {
	account, err := s.accounts.GetStorageAccount(ctx, ref)
	if err != nil {
		s.logger.Error("storage account unavailable", zap.String("resource", ref.Key()), zap.Error(err))
		return model.ReportBlob.UnavailableRow(ref.Name, ref.ResourceGroup)
	}

	usageGB := s.usage.GetUsedCapacityGB(ctx, ref)
	costs := s.pricing.CompareBlob(ctx, *account, usageGB)

	return model.ResultRow{
		Name:          ref.Name,
		ResourceGroup: ref.ResourceGroup,
		Attributes:    []string{account.Kind, account.SKU, account.Region},
		Prices:        priceCells(costs, model.ReportBlob),
	}
}

func (s *orchestratorService) diskRow(ctx context.Context, ref model.ResourceRef) model.ResultRow {
	disk, err := s.disks.GetDisk(ctx, ref)
	if err != nil {
		s.logger.Error("disk unavailable", zap.String("resource", ref.Key()), zap.Error(err))
		return model.ReportDisk.UnavailableRow(ref.Name, ref.ResourceGroup)
	}

	costs := s.pricing.CompareDisk(ctx, *disk)

	return model.ResultRow{
		Name:          ref.Name,
		ResourceGroup: ref.ResourceGroup,
		Attributes: []string{
			strconv.FormatInt(disk.CapacityGB, 10),
			disk.SKU,
			strconv.FormatInt(disk.IOPS, 10),
			strconv.FormatInt(disk.ThroughputMBps, 10),
		},
		Prices: priceCells(costs, model.ReportDisk),
	}
}

// priceCells lays the scenario costs out in the report's column order.
// A scenario the pricer did not return is shown as unavailable.
func priceCells(costs []model.ScenarioCost, kind model.ReportKind) []string {
	byScenario := make(map[string]model.ScenarioCost, len(costs))
	for _, cost := range costs {
		byScenario[cost.Scenario] = cost
	}

	scenarios := kind.Scenarios()
	cells := make([]string, len(scenarios))
	for i, scenario := range scenarios {
		cost, ok := byScenario[scenario]
		if !ok {
			cells[i] = model.NotAvailable
			continue
		}
		cells[i] = cost.Cell(kind.PricePrecision())
	}
	return cells
}

func (s *orchestratorService) accountName(ctx context.Context, subscriptionID string) string {
	if subscriptionID == "" {
		subscriptionID = s.cfg.Subscription
	}
	if subscriptionID == "" || s.identity == nil {
		return subscriptionID
	}

	info, err := s.identity.GetAccountInfo(ctx, subscriptionID)
	if err != nil {
		s.logger.Warn("failed to resolve subscription name", zap.Error(err))
		return subscriptionID
	}
	return info.AccountName
}

// loadRefs reads the input list. Entries that are not objects decode to
// an empty ref so the driver loop reports and skips them by position.
func loadRefs(path string) ([]model.ResourceRef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource list: %w", err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse resource list %s: %w", path, err)
	}

	refs := make([]model.ResourceRef, len(entries))
	for i, entry := range entries {
		if err := json.Unmarshal(entry, &refs[i]); err != nil {
			refs[i] = model.ResourceRef{}
		}
	}
	return refs, nil
}
