package azurecompute

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v5"
	"github.com/elC0mpa/azure-storage-doctor/config"
	"github.com/elC0mpa/azure-storage-doctor/model"
	"github.com/elC0mpa/azure-storage-doctor/service/azure/resourceid"
	"github.com/elC0mpa/azure-storage-doctor/service/retry"
	"go.uber.org/zap"
)

func NewService(credential azcore.TokenCredential, cfg config.Config, logger *zap.Logger) *service {
	return newService(func(subscriptionID string) (disksAPI, error) {
		disksClient, err := armcompute.NewDisksClient(subscriptionID, credential, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create disks client: %w", err)
		}
		return disksClient, nil
	}, cfg, logger)
}

func newService(newClient func(string) (disksAPI, error), cfg config.Config, logger *zap.Logger) *service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		newClient:     newClient,
		clients:       make(map[string]disksAPI),
		subscription:  cfg.Subscription,
		defaultRegion: cfg.DefaultRegion,
		policy: retry.Policy{
			Attempts: cfg.Retry.Attempts,
			Delay:    cfg.Retry.Delay,
		},
		logger: logger,
	}
}

// GetDisk returns the disk descriptor. Every failure wraps
// model.ErrResourceUnavailable.
func (s *service) GetDisk(ctx context.Context, ref model.ResourceRef) (*model.ResourceDescriptor, error) {
	subscriptionID := ref.Subscription
	if subscriptionID == "" {
		subscriptionID = s.subscription
	}

	client, err := s.client(subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrResourceUnavailable, err)
	}

	outcome := retry.Do(ctx, s.policy, s.logger, "disk "+ref.Name, func(ctx context.Context) (armcompute.Disk, error) {
		resp, err := client.Get(ctx, ref.ResourceGroup, ref.Name, nil)
		if err != nil {
			return armcompute.Disk{}, resourceid.Classify(err)
		}
		return resp.Disk, nil
	})
	if !outcome.Ok() {
		return nil, fmt.Errorf("%w: failed to get disk %s: %v", model.ErrResourceUnavailable, ref.Name, outcome.Err)
	}

	disk := outcome.Value
	if disk.Properties == nil || disk.Properties.DiskSizeGB == nil || disk.SKU == nil || disk.SKU.Name == nil {
		return nil, fmt.Errorf("%w: disk %s has no size or SKU", model.ErrResourceUnavailable, ref.Name)
	}

	descriptor := describeDisk(ref, subscriptionID, disk, s.defaultRegion)
	return &descriptor, nil
}

// ListDisks returns every managed disk of the subscription in the input
// list format
func (s *service) ListDisks(ctx context.Context, subscriptionID string) ([]model.ResourceRef, error) {
	disks, err := s.listDisks(ctx, subscriptionID, func(*armcompute.Disk) bool { return true })
	if err != nil {
		return nil, err
	}

	refs := make([]model.ResourceRef, 0, len(disks))
	for _, disk := range disks {
		refs = append(refs, model.ResourceRef{
			Name:          resourceid.Name(*disk.ID),
			ResourceGroup: resourceid.ResourceGroup(*disk.ID),
			Subscription:  subscriptionID,
		})
	}
	return refs, nil
}

// GetUnattachedDisks returns all Managed Disks that are unattached
func (s *service) GetUnattachedDisks(ctx context.Context, subscriptionID string) ([]*armcompute.Disk, error) {
	return s.listDisks(ctx, subscriptionID, func(disk *armcompute.Disk) bool {
		// A disk is unattached if DiskState is "Unattached"
		return disk.Properties != nil && disk.Properties.DiskState != nil &&
			*disk.Properties.DiskState == armcompute.DiskStateUnattached
	})
}

func (s *service) listDisks(ctx context.Context, subscriptionID string, keep func(*armcompute.Disk) bool) ([]*armcompute.Disk, error) {
	client, err := s.client(subscriptionID)
	if err != nil {
		return nil, err
	}

	var disks []*armcompute.Disk
	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list disks: %w", err)
		}

		for _, disk := range page.Value {
			if disk == nil || disk.ID == nil {
				continue
			}
			if keep(disk) {
				disks = append(disks, disk)
			}
		}
	}

	return disks, nil
}

func (s *service) client(subscriptionID string) (disksAPI, error) {
	if subscriptionID == "" {
		return nil, fmt.Errorf("%w: no subscription given", model.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if client, ok := s.clients[subscriptionID]; ok {
		return client, nil
	}

	client, err := s.newClient(subscriptionID)
	if err != nil {
		return nil, err
	}
	s.clients[subscriptionID] = client
	return client, nil
}

// describeDisk maps the ARM disk onto a descriptor. Missing IOPS and
// throughput are reported as 0, which prices inside the free tier.
func describeDisk(ref model.ResourceRef, subscriptionID string, disk armcompute.Disk, defaultRegion string) model.ResourceDescriptor {
	descriptor := model.ResourceDescriptor{
		Name:          ref.Name,
		ResourceGroup: ref.ResourceGroup,
		Subscription:  subscriptionID,
		Region:        defaultRegion,
		SKU:           string(*disk.SKU.Name),
		CapacityGB:    int64(*disk.Properties.DiskSizeGB),
	}

	if disk.Location != nil && *disk.Location != "" {
		descriptor.Region = *disk.Location
	}

	prefix, _ := descriptor.SKUParts()
	descriptor.Kind = prefix

	props := disk.Properties
	if props.Tier != nil {
		descriptor.Tier = *props.Tier
	}
	if props.DiskIOPSReadWrite != nil {
		descriptor.IOPS = *props.DiskIOPSReadWrite
	}
	if props.DiskMBpsReadWrite != nil {
		descriptor.ThroughputMBps = *props.DiskMBpsReadWrite
	}

	return descriptor
}
