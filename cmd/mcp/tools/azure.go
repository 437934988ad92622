package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/elC0mpa/azure-storage-doctor/cmd/mcp/response"
	"github.com/elC0mpa/azure-storage-doctor/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type unattachedDiskLister interface {
	GetUnattachedDisks(ctx context.Context, subscriptionID string) ([]*armcompute.Disk, error)
}

// AzureGateways are the services behind the subscription tools
type AzureGateways struct {
	Credential azcore.TokenCredential
	Identity   service.IdentityService
	Disks      unattachedDiskLister
}

// RegisterAzureTools registers the subscription discovery tools
func RegisterAzureTools(s *server.MCPServer, gw AzureGateways, subscriptionID string) {
	// List subscriptions (works without specific subscription ID)
	s.AddTool(
		mcp.NewTool("azure_list_subscriptions",
			mcp.WithDescription("List all Azure subscriptions the current credential has access to"),
		),
		makeAzureListSubscriptionsHandler(gw.Credential),
	)

	s.AddTool(
		mcp.NewTool("azure_get_subscription_info",
			mcp.WithDescription("Get Azure subscription details including ID and display name. Defaults to AZURE_SUBSCRIPTION_ID."),
			mcp.WithString("subscription_id", mcp.Description("Subscription to describe")),
		),
		makeAzureSubscriptionInfoHandler(gw.Identity, subscriptionID),
	)

	s.AddTool(
		mcp.NewTool("azure_list_unattached_disks",
			mcp.WithDescription("List Managed Disks that are not attached to any VM. Defaults to AZURE_SUBSCRIPTION_ID."),
			mcp.WithString("subscription_id", mcp.Description("Subscription to inspect")),
		),
		makeAzureUnattachedDisksHandler(gw.Disks, subscriptionID),
	)
}

func makeAzureListSubscriptionsHandler(credential azcore.TokenCredential) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		client, err := armsubscriptions.NewClient(credential, nil)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create subscriptions client: %v", err)), nil
		}

		var subscriptions []response.AzureSubscription
		pager := client.NewListPager(nil)
		for pager.More() {
			page, err := pager.NextPage(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list subscriptions: %v", err)), nil
			}

			for _, sub := range page.Value {
				if sub.SubscriptionID == nil {
					continue
				}

				displayName := *sub.SubscriptionID
				if sub.DisplayName != nil {
					displayName = *sub.DisplayName
				}

				state := "Unknown"
				if sub.State != nil {
					state = string(*sub.State)
				}

				// Only include enabled subscriptions
				if state == "Enabled" {
					subscriptions = append(subscriptions, response.AzureSubscription{
						SubscriptionID: *sub.SubscriptionID,
						DisplayName:    displayName,
						State:          state,
					})
				}
			}
		}

		return jsonResult(subscriptions)
	}
}

func makeAzureSubscriptionInfoHandler(identity service.IdentityService, defaultSubscription string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		subscriptionID := request.GetString("subscription_id", defaultSubscription)
		if subscriptionID == "" {
			return mcp.NewToolResultError("subscription_id or the AZURE_SUBSCRIPTION_ID environment variable is required"), nil
		}

		info, err := identity.GetAccountInfo(ctx, subscriptionID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get subscription info: %v", err)), nil
		}

		return jsonResult(response.ConvertAccountInfo(info))
	}
}

func makeAzureUnattachedDisksHandler(disks unattachedDiskLister, defaultSubscription string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		subscriptionID := request.GetString("subscription_id", defaultSubscription)
		if subscriptionID == "" {
			return mcp.NewToolResultError("subscription_id or the AZURE_SUBSCRIPTION_ID environment variable is required"), nil
		}

		found, err := disks.GetUnattachedDisks(ctx, subscriptionID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get unattached disks: %v", err)), nil
		}

		return jsonResult(response.ConvertUnattachedDisks(found))
	}
}

func jsonResult(value any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
