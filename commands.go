package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/elC0mpa/azure-storage-doctor/config"
	"github.com/elC0mpa/azure-storage-doctor/logging"
	"github.com/elC0mpa/azure-storage-doctor/model"
	azurecompute "github.com/elC0mpa/azure-storage-doctor/service/azure/compute"
	azureconfig "github.com/elC0mpa/azure-storage-doctor/service/azure/config"
	azureidentity "github.com/elC0mpa/azure-storage-doctor/service/azure/identity"
	azuremonitor "github.com/elC0mpa/azure-storage-doctor/service/azure/monitor"
	"github.com/elC0mpa/azure-storage-doctor/service/azure/resourceid"
	azurestorage "github.com/elC0mpa/azure-storage-doctor/service/azure/storage"
	"github.com/elC0mpa/azure-storage-doctor/service/flag"
	"github.com/elC0mpa/azure-storage-doctor/service/orchestrator"
	"github.com/elC0mpa/azure-storage-doctor/service/pricing"
	"github.com/elC0mpa/azure-storage-doctor/service/retailprices"
	"github.com/elC0mpa/azure-storage-doctor/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newReportCmd(kind model.ReportKind) *cobra.Command {
	short := "Compare storage account prices across account kinds"
	if kind == model.ReportDisk {
		short = "Compare managed disk prices across disk tiers"
	}

	return &cobra.Command{
		Use:   string(kind) + " <resources.json>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := flagService.GetParsedFlags(kind, args)
			if err != nil {
				return err
			}

			cfg, logger, err := loadRuntime(flags.Verbose)
			if err != nil {
				return err
			}
			defer logging.Sync(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			utils.DrawBanner()
			utils.StartSpinner()
			defer utils.StopSpinner()

			orchestratorService, err := newOrchestrator(cfg, logger)
			if err != nil {
				return err
			}

			return orchestratorService.Orchestrate(ctx, flags)
		},
	}
}

func newOrchestrator(cfg config.Config, logger *zap.Logger) (orchestrator.OrchestratorService, error) {
	cfgService, err := azureconfig.NewService(cfg.Subscription)
	if err != nil {
		return nil, err
	}
	credential := cfgService.GetCredential()

	identityService, err := azureidentity.NewService(credential)
	if err != nil {
		return nil, err
	}

	catalog := retailprices.NewFromConfig(cfg, logger)

	return orchestrator.NewService(orchestrator.Gateways{
		Accounts: azurestorage.NewService(credential, cfg, logger),
		Disks:    azurecompute.NewService(credential, cfg, logger),
		Usage:    azuremonitor.NewService(credential, cfg, logger),
		Pricing:  pricing.NewService(catalog, cfg.Pricing, logger),
		Identity: identityService,
	}, cfg, os.Stdout, logger), nil
}

func newPricesCmd() *cobra.Command {
	var filter model.PriceFilter
	var minimumUnits float64

	cmd := &cobra.Command{
		Use:   "prices",
		Short: "Query the Azure Retail Prices catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadRuntime(v.GetBool(flag.KeyVerbose))
			if err != nil {
				return err
			}
			defer logging.Sync(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			filter.Region = cfg.DefaultRegion
			if cmd.Flags().Changed("min-units") {
				filter.MinimumUnits = &minimumUnits
			}

			records, err := retailprices.NewFromConfig(cfg, logger).Query(ctx, filter)
			if err != nil {
				return err
			}

			utils.DrawPriceRecords(os.Stdout, filter, records)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.ProductName, "product", "", "Product name, e.g. \"Premium SSD Managed Disks\"")
	cmd.Flags().StringVar(&filter.SKUName, "sku", "", "SKU name, e.g. \"P10 LRS\"")
	cmd.Flags().StringVar(&filter.MeterName, "meter", "", "Meter name")
	cmd.Flags().Float64Var(&minimumUnits, "min-units", 0, "Tier minimum units")
	_ = cmd.MarkFlagRequired("product")
	_ = cmd.MarkFlagRequired("sku")

	return cmd
}

func newInventoryCmd() *cobra.Command {
	var unattached bool

	cmd := &cobra.Command{
		Use:       "inventory <blob|disk>",
		Short:     "Print the storage accounts or disks of a subscription as a resource list",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(model.ReportBlob), string(model.ReportDisk)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := model.ParseReportKind(args[0])
			if err != nil {
				return err
			}

			cfg, logger, err := loadRuntime(v.GetBool(flag.KeyVerbose))
			if err != nil {
				return err
			}
			defer logging.Sync(logger)

			if cfg.Subscription == "" {
				return fmt.Errorf("%w: --subscription or AZURE_SUBSCRIPTION_ID is required", model.ErrInvalidInput)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			refs, err := listResources(ctx, kind, unattached, cfg, logger)
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(refs)
		},
	}

	cmd.Flags().BoolVar(&unattached, "unattached", false, "Only list disks that are not attached to a VM")

	return cmd
}

func listResources(ctx context.Context, kind model.ReportKind, unattached bool, cfg config.Config, logger *zap.Logger) ([]model.ResourceRef, error) {
	cfgService, err := azureconfig.NewService(cfg.Subscription)
	if err != nil {
		return nil, err
	}
	credential := cfgService.GetCredential()

	if kind == model.ReportBlob {
		return azurestorage.NewService(credential, cfg, logger).ListStorageAccounts(ctx, cfg.Subscription)
	}

	computeService := azurecompute.NewService(credential, cfg, logger)
	if !unattached {
		return computeService.ListDisks(ctx, cfg.Subscription)
	}

	disks, err := computeService.GetUnattachedDisks(ctx, cfg.Subscription)
	if err != nil {
		return nil, err
	}

	refs := make([]model.ResourceRef, 0, len(disks))
	for _, disk := range disks {
		refs = append(refs, model.ResourceRef{
			Name:          resourceid.Name(*disk.ID),
			ResourceGroup: resourceid.ResourceGroup(*disk.ID),
			Subscription:  cfg.Subscription,
		})
	}
	return refs, nil
}
