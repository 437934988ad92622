package azureidentity

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/elC0mpa/azure-storage-doctor/model"
)

func NewService(credential azcore.TokenCredential) (*service, error) {
	client, err := armsubscriptions.NewClient(credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriptions client: %w", err)
	}

	return &service{client: client}, nil
}

// GetAccountInfo falls back to the subscription ID when it has no display name
func (s *service) GetAccountInfo(ctx context.Context, subscriptionID string) (*model.AccountInfo, error) {
	if subscriptionID == "" {
		return nil, fmt.Errorf("%w: no subscription given", model.ErrInvalidInput)
	}

	resp, err := s.client.Get(ctx, subscriptionID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription info: %w", err)
	}

	displayName := subscriptionID
	if resp.DisplayName != nil {
		displayName = *resp.DisplayName
	}

	return &model.AccountInfo{
		Provider:    "azure",
		AccountID:   subscriptionID,
		AccountName: displayName,
	}, nil
}
