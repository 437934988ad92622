package azurestorage

import (
	"context"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"github.com/elC0mpa/azure-storage-doctor/model"
	"github.com/elC0mpa/azure-storage-doctor/service/retry"
	"go.uber.org/zap"
)

type service struct {
	newClient     func(subscriptionID string) (accountsAPI, error)
	clients       map[string]accountsAPI
	mu            sync.Mutex
	subscription  string
	defaultRegion string
	policy        retry.Policy
	logger        *zap.Logger
}

// accountsAPI is the part of armstorage.AccountsClient the gateway uses
type accountsAPI interface {
	GetProperties(ctx context.Context, resourceGroupName string, accountName string, options *armstorage.AccountsClientGetPropertiesOptions) (armstorage.AccountsClientGetPropertiesResponse, error)
	NewListPager(options *armstorage.AccountsClientListOptions) *runtime.Pager[armstorage.AccountsClientListResponse]
}

// StorageService looks up storage accounts
type StorageService interface {
	GetStorageAccount(ctx context.Context, ref model.ResourceRef) (*model.ResourceDescriptor, error)
	ListStorageAccounts(ctx context.Context, subscriptionID string) ([]model.ResourceRef, error)
}
