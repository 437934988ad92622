package azurestorage

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"github.com/elC0mpa/azure-storage-doctor/config"
	"github.com/elC0mpa/azure-storage-doctor/model"
	"github.com/elC0mpa/azure-storage-doctor/service/azure/resourceid"
	"github.com/elC0mpa/azure-storage-doctor/service/retry"
	"go.uber.org/zap"
)

func NewService(credential azcore.TokenCredential, cfg config.Config, logger *zap.Logger) *service {
	return newService(func(subscriptionID string) (accountsAPI, error) {
		client, err := armstorage.NewAccountsClient(subscriptionID, credential, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage accounts client: %w", err)
		}
		return client, nil
	}, cfg, logger)
}

func newService(newClient func(string) (accountsAPI, error), cfg config.Config, logger *zap.Logger) *service {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		newClient:     newClient,
		clients:       make(map[string]accountsAPI),
		subscription:  cfg.Subscription,
		defaultRegion: cfg.DefaultRegion,
		policy: retry.Policy{
			Attempts: cfg.Retry.Attempts,
			Delay:    cfg.Retry.Delay,
		},
		logger: logger,
	}
}

// GetStorageAccount returns the account descriptor. Every failure wraps
// model.ErrResourceUnavailable.
func (s *service) GetStorageAccount(ctx context.Context, ref model.ResourceRef) (*model.ResourceDescriptor, error) {
	subscriptionID := ref.Subscription
	if subscriptionID == "" {
		subscriptionID = s.subscription
	}

	client, err := s.client(subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrResourceUnavailable, err)
	}

	outcome := retry.Do(ctx, s.policy, s.logger, "storage account "+ref.Name, func(ctx context.Context) (armstorage.Account, error) {
		resp, err := client.GetProperties(ctx, ref.ResourceGroup, ref.Name, nil)
		if err != nil {
			return armstorage.Account{}, resourceid.Classify(err)
		}
		return resp.Account, nil
	})
	if !outcome.Ok() {
		return nil, fmt.Errorf("%w: failed to get storage account %s: %v", model.ErrResourceUnavailable, ref.Name, outcome.Err)
	}

	descriptor := describeAccount(ref, subscriptionID, outcome.Value, s.defaultRegion)
	return &descriptor, nil
}

// ListStorageAccounts returns every account of the subscription in the
// input list format
func (s *service) ListStorageAccounts(ctx context.Context, subscriptionID string) ([]model.ResourceRef, error) {
	client, err := s.client(subscriptionID)
	if err != nil {
		return nil, err
	}

	var refs []model.ResourceRef
	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list storage accounts: %w", err)
		}

		for _, account := range page.Value {
			if account.ID == nil || account.Name == nil {
				continue
			}
			refs = append(refs, model.ResourceRef{
				Name:          *account.Name,
				ResourceGroup: resourceid.ResourceGroup(*account.ID),
				Subscription:  subscriptionID,
			})
		}
	}

	return refs, nil
}

func (s *service) client(subscriptionID string) (accountsAPI, error) {
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

func describeAccount(ref model.ResourceRef, subscriptionID string, account armstorage.Account, defaultRegion string) model.ResourceDescriptor {
	descriptor := model.ResourceDescriptor{
		Name:          ref.Name,
		ResourceGroup: ref.ResourceGroup,
		Subscription:  subscriptionID,
		Region:        defaultRegion,
	}

	if account.Location != nil && *account.Location != "" {
		descriptor.Region = *account.Location
	}
	if account.Kind != nil {
		descriptor.Kind = string(*account.Kind)
	}
	if account.SKU != nil && account.SKU.Name != nil {
		descriptor.SKU = string(*account.SKU.Name)
	}

	return descriptor
}
