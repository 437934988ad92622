package azureconfig

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// NewService resolves one credential for the storage, compute, monitor and
// subscription clients. It needs read access to storage accounts, disks and
// the UsedCapacity metric; retail prices are fetched anonymously.
// subscriptionID applies to input entries that name no subscription.
func NewService(subscriptionID string) (*service, error) {
	// environment, managed identity or az login, whichever resolves first
	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve Azure credential for inventory reads: %w", err)
	}

	return &service{
		subscriptionID: subscriptionID,
		credential:     credential,
	}, nil
}

// GetCredential is shared by every ARM client of a run
func (s *service) GetCredential() azcore.TokenCredential {
	return s.credential
}

func (s *service) GetSubscriptionID() string {
	return s.subscriptionID
}
