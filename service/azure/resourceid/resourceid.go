// Package resourceid works with Azure Resource Manager identifiers and errors.
package resourceid

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/elC0mpa/azure-storage-doctor/service/retry"
)

// Name extracts the resource name from an Azure resource ID
// e.g., "/subscriptions/.../resourceGroups/.../providers/Microsoft.Compute/disks/my-disk"
// returns "my-disk"
func Name(resourceID string) string {
	parts := strings.Split(strings.TrimSuffix(resourceID, "/"), "/")
	return parts[len(parts)-1]
}

// ResourceGroup extracts the resource group from an Azure resource ID
func ResourceGroup(resourceID string) string {
	parts := strings.Split(resourceID, "/")
	for i, part := range parts {
		if strings.EqualFold(part, "resourceGroups") && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

// StorageAccount builds the ID of a storage account
func StorageAccount(subscriptionID, resourceGroup, name string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Storage/storageAccounts/%s",
		subscriptionID, resourceGroup, name)
}

// Classify marks ARM errors that cannot succeed on retry as permanent
func Classify(err error) error {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.StatusCode {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return retry.Permanent(err)
		}
	}
	return err
}
