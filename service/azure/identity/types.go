package azureidentity

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/elC0mpa/azure-storage-doctor/model"
)

type service struct {
	client subscriptionsAPI
}

type subscriptionsAPI interface {
	Get(ctx context.Context, subscriptionID string, options *armsubscriptions.ClientGetOptions) (armsubscriptions.ClientGetResponse, error)
}

// IdentityService names the subscription a report is produced for
type IdentityService interface {
	GetAccountInfo(ctx context.Context, subscriptionID string) (*model.AccountInfo, error)
}
