package tools

import (
	"context"
	"fmt"

	"github.com/elC0mpa/azure-storage-doctor/cmd/mcp/response"
	"github.com/elC0mpa/azure-storage-doctor/config"
	"github.com/elC0mpa/azure-storage-doctor/model"
	"github.com/elC0mpa/azure-storage-doctor/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/shopspring/decimal"
)

// StorageGateways are the services behind the pricing tools
type StorageGateways struct {
	Accounts service.AccountInventory
	Disks    service.DiskInventory
	Usage    service.UsageService
	Pricing  service.ScenarioPricer
	Catalog  service.PriceCatalog
}

// RegisterStorageTools registers the price comparison tools
func RegisterStorageTools(s *server.MCPServer, gw StorageGateways, cfg config.Config) {
	s.AddTool(
		mcp.NewTool("compare_blob_price",
			mcp.WithDescription("Price a storage account's stored data as Storage (v1), BlockBlobStorage and StorageV2 on zone-redundant storage. Usage comes from Azure Monitor unless usage_gb is given."),
			mcp.WithString("account_name", mcp.Required(), mcp.Description("Storage account name")),
			mcp.WithString("resource_group", mcp.Required(), mcp.Description("Resource group of the account")),
			mcp.WithString("subscription_id", mcp.Description("Subscription of the account, defaults to AZURE_SUBSCRIPTION_ID")),
			mcp.WithNumber("usage_gb", mcp.Description("Stored data in GB, overrides the metric lookup")),
		),
		makeCompareBlobHandler(gw, cfg),
	)

	s.AddTool(
		mcp.NewTool("compare_disk_price",
			mcp.WithDescription("Price a managed disk as configured, as Standard SSD and as Premium SSD v2. Either look the disk up by name or describe a hypothetical one with sku and size_gb."),
			mcp.WithString("disk_name", mcp.Description("Managed disk name")),
			mcp.WithString("resource_group", mcp.Description("Resource group of the disk")),
			mcp.WithString("subscription_id", mcp.Description("Subscription of the disk, defaults to AZURE_SUBSCRIPTION_ID")),
			mcp.WithString("sku", mcp.Description("Disk SKU such as Premium_LRS, skips the inventory lookup")),
			mcp.WithNumber("size_gb", mcp.Description("Disk size in GB, required with sku")),
			mcp.WithNumber("iops", mcp.Description("Provisioned IOPS")),
			mcp.WithNumber("throughput_mbps", mcp.Description("Provisioned throughput in MB/s")),
			mcp.WithString("region", mcp.Description("Region of a hypothetical disk")),
		),
		makeCompareDiskHandler(gw, cfg),
	)

	s.AddTool(
		mcp.NewTool("query_retail_prices",
			mcp.WithDescription("Query the Azure Retail Prices catalog. Prices are returned in the catalog currency (USD)."),
			mcp.WithString("product_name", mcp.Required(), mcp.Description("Product name, e.g. Premium SSD Managed Disks")),
			mcp.WithString("sku_name", mcp.Required(), mcp.Description("SKU name, e.g. P10 LRS")),
			mcp.WithString("region", mcp.Description("ARM region name, defaults to the configured region")),
			mcp.WithString("meter_name", mcp.Description("Meter name")),
			mcp.WithNumber("tier_minimum_units", mcp.Description("Tier minimum units")),
		),
		makeQueryRetailPricesHandler(gw.Catalog, cfg),
	)
}

func makeCompareBlobHandler(gw StorageGateways, cfg config.Config) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref := model.ResourceRef{
			Name:          request.GetString("account_name", ""),
			ResourceGroup: request.GetString("resource_group", ""),
			Subscription:  request.GetString("subscription_id", cfg.Subscription),
		}
		if err := ref.Validate(); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		account, err := gw.Accounts.GetStorageAccount(ctx, ref)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get storage account: %v", err)), nil
		}

		var usageGB decimal.Decimal
		if hasArgument(request, "usage_gb") {
			usageGB = decimal.NewFromFloat(request.GetFloat("usage_gb", 0))
			if usageGB.IsNegative() {
				return mcp.NewToolResultError("usage_gb cannot be negative"), nil
			}
		} else {
			usageGB = gw.Usage.GetUsedCapacityGB(ctx, ref)
		}

		costs := gw.Pricing.CompareBlob(ctx, *account, usageGB)
		scenarios, cheapest := response.ConvertScenarioCosts(costs, model.ReportBlob.PricePrecision())

		return jsonResult(response.PriceComparison{
			Resource:      account.Name,
			ResourceGroup: account.ResourceGroup,
			Region:        account.Region,
			Kind:          account.Kind,
			SKU:           account.SKU,
			UsageGB:       usageGB.String(),
			Currency:      cfg.Pricing.Currency,
			Scenarios:     scenarios,
			Cheapest:      cheapest,
		})
	}
}

func makeCompareDiskHandler(gw StorageGateways, cfg config.Config) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		disk, err := resolveDisk(ctx, gw.Disks, request, cfg)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		costs := gw.Pricing.CompareDisk(ctx, *disk)
		scenarios, cheapest := response.ConvertScenarioCosts(costs, model.ReportDisk.PricePrecision())

		return jsonResult(response.PriceComparison{
			Resource:      disk.Name,
			ResourceGroup: disk.ResourceGroup,
			Region:        disk.Region,
			Kind:          disk.Kind,
			SKU:           disk.SKU,
			Currency:      cfg.Pricing.Currency,
			Scenarios:     scenarios,
			Cheapest:      cheapest,
		})
	}
}

// resolveDisk builds the descriptor from the arguments when a sku is
// given and looks the disk up otherwise
func resolveDisk(ctx context.Context, disks service.DiskInventory, request mcp.CallToolRequest, cfg config.Config) (*model.ResourceDescriptor, error) {
	sku := request.GetString("sku", "")
	if sku == "" {
		ref := model.ResourceRef{
			Name:          request.GetString("disk_name", ""),
			ResourceGroup: request.GetString("resource_group", ""),
			Subscription:  request.GetString("subscription_id", cfg.Subscription),
		}
		if err := ref.Validate(); err != nil {
			return nil, fmt.Errorf("%w (or describe the disk with sku and size_gb)", err)
		}

		disk, err := disks.GetDisk(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("failed to get disk: %w", err)
		}
		return disk, nil
	}

	size := request.GetInt("size_gb", 0)
	if size <= 0 {
		return nil, fmt.Errorf("%w: size_gb must be positive when sku is given", model.ErrInvalidInput)
	}

	disk := &model.ResourceDescriptor{
		Name:           request.GetString("disk_name", "hypothetical"),
		ResourceGroup:  request.GetString("resource_group", ""),
		Region:         request.GetString("region", cfg.DefaultRegion),
		SKU:            sku,
		CapacityGB:     int64(size),
		IOPS:           int64(request.GetInt("iops", 0)),
		ThroughputMBps: int64(request.GetInt("throughput_mbps", 0)),
	}
	disk.Kind, _ = disk.SKUParts()
	return disk, nil
}

func makeQueryRetailPricesHandler(catalog service.PriceCatalog, cfg config.Config) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		product, err := request.RequireString("product_name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		sku, err := request.RequireString("sku_name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		filter := model.PriceFilter{
			Region:      request.GetString("region", cfg.DefaultRegion),
			ProductName: product,
			SKUName:     sku,
			MeterName:   request.GetString("meter_name", ""),
		}
		if hasArgument(request, "tier_minimum_units") {
			units := request.GetFloat("tier_minimum_units", 0)
			filter.MinimumUnits = &units
		}

		records, err := catalog.Query(ctx, filter)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to query retail prices: %v", err)), nil
		}

		return jsonResult(response.ConvertPriceRecords(records))
	}
}

func hasArgument(request mcp.CallToolRequest, name string) bool {
	_, ok := request.GetArguments()[name]
	return ok
}
