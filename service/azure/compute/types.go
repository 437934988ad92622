package azurecompute

import (
	"context"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"
	"github.com/elC0mpa/azure-storage-doctor/model"
	"github.com/elC0mpa/azure-storage-doctor/service/retry"
	"go.uber.org/zap"
)

type service struct {
	newClient     func(subscriptionID string) (disksAPI, error)
	clients       map[string]disksAPI
	mu            sync.Mutex
	subscription  string
	defaultRegion string
	policy        retry.Policy
	logger        *zap.Logger
}

// disksAPI is the part of armcompute.DisksClient the gateway uses
type disksAPI interface {
	Get(ctx context.Context, resourceGroupName string, diskName string, options *armcompute.DisksClientGetOptions) (armcompute.DisksClientGetResponse, error)
	NewListPager(options *armcompute.DisksClientListOptions) *runtime.Pager[armcompute.DisksClientListResponse]
}

// ComputeService looks up managed disks
type ComputeService interface {
	GetDisk(ctx context.Context, ref model.ResourceRef) (*model.ResourceDescriptor, error)
	ListDisks(ctx context.Context, subscriptionID string) ([]model.ResourceRef, error)
	GetUnattachedDisks(ctx context.Context, subscriptionID string) ([]*armcompute.Disk, error)
}
