package orchestrator

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/elC0mpa/azure-storage-doctor/config"
	"github.com/elC0mpa/azure-storage-doctor/model"
	"github.com/elC0mpa/azure-storage-doctor/service/progress"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeInventory struct {
	descriptors map[string]model.ResourceDescriptor
	calls       map[string]int
	onLookup    func(ctx context.Context) error
}

func newFakeInventory() *fakeInventory {
	return &fakeInventory{
		descriptors: make(map[string]model.ResourceDescriptor),
		calls:       make(map[string]int),
	}
}

func (f *fakeInventory) lookup(ctx context.Context, ref model.ResourceRef) (*model.ResourceDescriptor, error) {
	f.calls[ref.Key()]++
	if f.onLookup != nil {
		if err := f.onLookup(ctx); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", model.ErrResourceUnavailable, ref.Key(), err)
		}
	}
	d, ok := f.descriptors[ref.Key()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrResourceUnavailable, ref.Key())
	}
	return &d, nil
}

func (f *fakeInventory) GetStorageAccount(ctx context.Context, ref model.ResourceRef) (*model.ResourceDescriptor, error) {
	return f.lookup(ctx, ref)
}

func (f *fakeInventory) GetDisk(ctx context.Context, ref model.ResourceRef) (*model.ResourceDescriptor, error) {
	return f.lookup(ctx, ref)
}

type fakeUsage struct {
	calls int
}

func (f *fakeUsage) GetUsedCapacityGB(ctx context.Context, ref model.ResourceRef) decimal.Decimal {
	f.calls++
	return decimal.NewFromInt(500)
}

type fakePricer struct {
	blobCalls int
	diskCalls int
	usage     []decimal.Decimal
	onCompare func()
}

func priced(scenario, amount string) model.ScenarioCost {
	cost := model.ScenarioCost{Scenario: scenario, Breakdown: model.CostBreakdown{}}
	cost.Breakdown.Add(model.ComponentStorage, decimal.RequireFromString(amount))
	return cost
}

func unpriced(scenario string) model.ScenarioCost {
	return model.ScenarioCost{Scenario: scenario, Breakdown: model.CostBreakdown{}}
}

func (f *fakePricer) CompareBlob(ctx context.Context, account model.ResourceDescriptor, usageGB decimal.Decimal) []model.ScenarioCost {
	f.blobCalls++
	f.usage = append(f.usage, usageGB)
	if f.onCompare != nil {
		f.onCompare()
		return []model.ScenarioCost{
			unpriced(model.ScenarioStorageV1),
			unpriced(model.ScenarioBlockBlob),
			unpriced(model.ScenarioStorageV2),
		}
	}
	return []model.ScenarioCost{
		priced(model.ScenarioStorageV1, "8.1"),
		unpriced(model.ScenarioBlockBlob),
		priced(model.ScenarioStorageV2, "6.75"),
	}
}

func (f *fakePricer) CompareDisk(ctx context.Context, disk model.ResourceDescriptor) []model.ScenarioCost {
	f.diskCalls++
	return []model.ScenarioCost{
		priced(model.ScenarioExisting, "14.016"),
		priced(model.ScenarioStandard, "7.2"),
	}
}

type fakeIdentity struct{}

func (fakeIdentity) GetAccountInfo(ctx context.Context, subscriptionID string) (*model.AccountInfo, error) {
	return &model.AccountInfo{AccountID: subscriptionID, AccountName: "Production"}, nil
}

type fixture struct {
	svc       *orchestratorService
	inventory *fakeInventory
	usage     *fakeUsage
	pricer    *fakePricer
	out       *bytes.Buffer
	dir       string
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		inventory: newFakeInventory(),
		usage:     &fakeUsage{},
		pricer:    &fakePricer{},
		out:       &bytes.Buffer{},
		dir:       t.TempDir(),
	}

	cfg := config.Default()
	cfg.Subscription = "sub-1"

	f.svc = NewService(Gateways{
		Accounts: f.inventory,
		Disks:    f.inventory,
		Usage:    f.usage,
		Pricing:  f.pricer,
		Identity: fakeIdentity{},
	}, cfg, f.out, zaptest.NewLogger(t))

	return f
}

func (f *fixture) writeInput(t *testing.T, content string) string {
	path := filepath.Join(f.dir, "input.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (f *fixture) flags(kind model.ReportKind, input string) model.Flags {
	return model.Flags{
		Report:      kind,
		InputFile:   input,
		ResultsFile: filepath.Join(f.dir, "results", string(kind)+".json"),
	}
}

func (f *fixture) rows(t *testing.T, flags model.Flags) []model.ResultRow {
	store, err := progress.NewService(flags.ResultsFile, nil)
	require.NoError(t, err)
	return store.Rows()
}

func TestBlobReport(t *testing.T) {
	f := newFixture(t)
	f.inventory.descriptors["datalake|rg"] = model.ResourceDescriptor{
		Name: "datalake", ResourceGroup: "rg", Region: "uksouth", Kind: "StorageV2", SKU: "Standard_RAGRS",
	}

	input := f.writeInput(t, `[
		{"storageAccountName": "datalake", "resourcegroup": "rg"},
		{"storageAccountName": "missing", "resourcegroup": "rg"}
	]`)
	flags := f.flags(model.ReportBlob, input)

	require.NoError(t, f.svc.Orchestrate(context.Background(), flags))

	rows := f.rows(t, flags)
	require.Len(t, rows, 2)

	assert.Equal(t, model.ResultRow{
		Name:          "datalake",
		ResourceGroup: "rg",
		Attributes:    []string{"StorageV2", "Standard_RAGRS", "uksouth"},
		Prices:        []string{"8.10", model.NotAvailable, "6.75"},
	}, rows[0])
	assert.Equal(t, model.ReportBlob.UnavailableRow("missing", "rg"), rows[1])

	assert.Equal(t, 1, f.usage.calls, "usage is only fetched for resolved accounts")
	assert.True(t, f.pricer.usage[0].Equal(decimal.NewFromInt(500)))
	assert.Contains(t, f.out.String(), "Production")
}

func TestDiskReport(t *testing.T) {
	f := newFixture(t)
	f.inventory.descriptors["disk-a|rg"] = model.ResourceDescriptor{
		Name: "disk-a", ResourceGroup: "rg", SKU: "Premium_LRS", CapacityGB: 128, IOPS: 500, ThroughputMBps: 100,
	}

	input := f.writeInput(t, `[{"diskname": "disk-a", "resourceGroup": "rg"}]`)
	flags := f.flags(model.ReportDisk, input)

	require.NoError(t, f.svc.Orchestrate(context.Background(), flags))

	rows := f.rows(t, flags)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"128", "Premium_LRS", "500", "100"}, rows[0].Attributes)
	// the pricer did not return PremiumV2 at all
	assert.Equal(t, []string{"14.016000", "7.200000", model.NotAvailable}, rows[0].Prices)
	assert.Zero(t, f.usage.calls)
}

func TestResumeSkipsRecordedResources(t *testing.T) {
	f := newFixture(t)
	f.inventory.descriptors["a|rg"] = model.ResourceDescriptor{Name: "a", ResourceGroup: "rg", Kind: "StorageV2", SKU: "Standard_LRS"}
	f.inventory.descriptors["b|rg"] = model.ResourceDescriptor{Name: "b", ResourceGroup: "rg", Kind: "Storage", SKU: "Standard_GRS"}

	input := f.writeInput(t, `[{"name": "a", "resourceGroup": "rg"}, {"name": "b", "resourceGroup": "rg"}]`)
	flags := f.flags(model.ReportBlob, input)

	require.NoError(t, f.svc.Orchestrate(context.Background(), flags))
	first := f.rows(t, flags)

	require.NoError(t, f.svc.Orchestrate(context.Background(), flags))
	second := f.rows(t, flags)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.inventory.calls["a|rg"])
	assert.Equal(t, 1, f.inventory.calls["b|rg"])
	assert.Equal(t, 2, f.pricer.blobCalls)
}

func TestResumeSkipsUnavailableRows(t *testing.T) {
	f := newFixture(t)
	input := f.writeInput(t, `[{"name": "gone", "resourceGroup": "rg"}]`)
	flags := f.flags(model.ReportBlob, input)

	require.NoError(t, f.svc.Orchestrate(context.Background(), flags))
	require.NoError(t, f.svc.Orchestrate(context.Background(), flags))

	assert.Equal(t, 1, f.inventory.calls["gone|rg"])
	assert.Len(t, f.rows(t, flags), 1)
}

func TestFreshRunReprices(t *testing.T) {
	f := newFixture(t)
	f.inventory.descriptors["a|rg"] = model.ResourceDescriptor{Name: "a", ResourceGroup: "rg", Kind: "StorageV2", SKU: "Standard_LRS"}

	input := f.writeInput(t, `[{"name": "a", "resourceGroup": "rg"}]`)
	flags := f.flags(model.ReportBlob, input)

	require.NoError(t, f.svc.Orchestrate(context.Background(), flags))
	flags.Fresh = true
	require.NoError(t, f.svc.Orchestrate(context.Background(), flags))

	assert.Equal(t, 2, f.inventory.calls["a|rg"])
	assert.Len(t, f.rows(t, flags), 1)
}

func TestInvalidEntriesAreSkipped(t *testing.T) {
	f := newFixture(t)
	f.inventory.descriptors["a|rg"] = model.ResourceDescriptor{Name: "a", ResourceGroup: "rg", Kind: "StorageV2", SKU: "Standard_LRS"}

	input := f.writeInput(t, `["not an object", {"name": "a"}, {"resourceGroup": "rg"}, {"name": "a", "resourceGroup": "rg"}]`)
	flags := f.flags(model.ReportBlob, input)

	require.NoError(t, f.svc.Orchestrate(context.Background(), flags))

	rows := f.rows(t, flags)
	require.Len(t, rows, 1)
	assert.Equal(t, "a", rows[0].Name)
}

func TestDuplicateInputEntriesArePricedOnce(t *testing.T) {
	f := newFixture(t)
	f.inventory.descriptors["a|rg"] = model.ResourceDescriptor{Name: "a", ResourceGroup: "rg", Kind: "StorageV2", SKU: "Standard_LRS"}

	input := f.writeInput(t, `[{"name": "a", "resourceGroup": "rg"}, {"name": "a", "resourceGroup": "rg"}]`)
	flags := f.flags(model.ReportBlob, input)

	require.NoError(t, f.svc.Orchestrate(context.Background(), flags))
	assert.Equal(t, 1, f.inventory.calls["a|rg"])
}

func TestUnreadableInputIsFatal(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Orchestrate(context.Background(), f.flags(model.ReportBlob, filepath.Join(f.dir, "absent.json")))
	assert.Error(t, err)

	input := f.writeInput(t, `{"name": "not a list"}`)
	err = f.svc.Orchestrate(context.Background(), f.flags(model.ReportBlob, input))
	assert.Error(t, err)
}

func TestCancelledContextStopsTheRun(t *testing.T) {
	f := newFixture(t)
	input := f.writeInput(t, `[{"name": "a", "resourceGroup": "rg"}]`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.svc.Orchestrate(ctx, f.flags(model.ReportBlob, input))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, f.inventory.calls["a|rg"])
}

func TestInterruptedLookupIsNotRecorded(t *testing.T) {
	f := newFixture(t)
	f.inventory.descriptors["a|rg"] = model.ResourceDescriptor{Name: "a", ResourceGroup: "rg", Kind: "StorageV2", SKU: "Standard_LRS"}
	f.inventory.descriptors["b|rg"] = model.ResourceDescriptor{Name: "b", ResourceGroup: "rg", Kind: "StorageV2", SKU: "Standard_LRS"}
	input := f.writeInput(t, `[{"name": "a", "resourceGroup": "rg"}, {"name": "b", "resourceGroup": "rg"}]`)
	flags := f.flags(model.ReportBlob, input)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.inventory.onLookup = func(ctx context.Context) error {
		cancel()
		return ctx.Err()
	}

	err := f.svc.Orchestrate(ctx, flags)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.rows(t, flags))
	assert.Zero(t, f.inventory.calls["b|rg"])

	// the next run prices the interrupted resource
	f.inventory.onLookup = nil
	require.NoError(t, f.svc.Orchestrate(context.Background(), flags))

	rows := f.rows(t, flags)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"8.10", model.NotAvailable, "6.75"}, rows[0].Prices)
	assert.Equal(t, 2, f.inventory.calls["a|rg"])
}

func TestInterruptedPricingIsNotRecorded(t *testing.T) {
	f := newFixture(t)
	f.inventory.descriptors["a|rg"] = model.ResourceDescriptor{Name: "a", ResourceGroup: "rg", Kind: "StorageV2", SKU: "Standard_LRS"}
	input := f.writeInput(t, `[{"name": "a", "resourceGroup": "rg"}]`)
	flags := f.flags(model.ReportBlob, input)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.pricer.onCompare = cancel

	err := f.svc.Orchestrate(ctx, flags)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.rows(t, flags))
	assert.Equal(t, 1, f.pricer.blobCalls)
}

func TestPriceCellsOrder(t *testing.T) {
	costs := []model.ScenarioCost{
		priced(model.ScenarioStorageV2, "3"),
		priced(model.ScenarioStorageV1, "1"),
	}

	assert.Equal(t, []string{"1.00", model.NotAvailable, "3.00"}, priceCells(costs, model.ReportBlob))
}
