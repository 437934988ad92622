package main

import (
	"fmt"
	"os"

	"github.com/elC0mpa/azure-storage-doctor/cmd/mcp/tools"
	"github.com/elC0mpa/azure-storage-doctor/logging"
	azurecompute "github.com/elC0mpa/azure-storage-doctor/service/azure/compute"
	azureconfig "github.com/elC0mpa/azure-storage-doctor/service/azure/config"
	azureidentity "github.com/elC0mpa/azure-storage-doctor/service/azure/identity"
	azuremonitor "github.com/elC0mpa/azure-storage-doctor/service/azure/monitor"
	azurestorage "github.com/elC0mpa/azure-storage-doctor/service/azure/storage"
	"github.com/elC0mpa/azure-storage-doctor/service/pricing"
	"github.com/elC0mpa/azure-storage-doctor/service/retailprices"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the protocol
	if cfg.Settings.Logging.Output == "stdout" {
		cfg.Settings.Logging.Output = "stderr"
	}
	logger, err := logging.New(cfg.Settings.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync(logger)

	cfgService, err := azureconfig.NewService(cfg.AzureSubscriptionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Azure credential error: %v\n", err)
		os.Exit(1)
	}
	credential := cfgService.GetCredential()

	identityService, err := azureidentity.NewService(credential)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Azure identity error: %v\n", err)
		os.Exit(1)
	}

	catalog := retailprices.NewFromConfig(cfg.Settings, logger)
	computeService := azurecompute.NewService(credential, cfg.Settings, logger)

	s := server.NewMCPServer(
		"azure-storage-doctor-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	tools.RegisterAzureTools(s, tools.AzureGateways{
		Credential: credential,
		Identity:   identityService,
		Disks:      computeService,
	}, cfg.AzureSubscriptionID)

	tools.RegisterStorageTools(s, tools.StorageGateways{
		Accounts: azurestorage.NewService(credential, cfg.Settings, logger),
		Disks:    computeService,
		Usage:    azuremonitor.NewService(credential, cfg.Settings, logger),
		Pricing:  pricing.NewService(catalog, cfg.Settings.Pricing, logger),
		Catalog:  catalog,
	}, cfg.Settings)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
