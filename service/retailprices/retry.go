package retailprices

import (
	"context"
	"errors"

	"github.com/elC0mpa/azure-storage-doctor/model"
	"github.com/elC0mpa/azure-storage-doctor/service/retry"
	"go.uber.org/zap"
)

// NewRetryingService retries next on errors and empty answers. Once the
// attempts are exhausted on empty answers it returns no records and no
// error; malformed payloads are not retried.
func NewRetryingService(next CatalogService, policy retry.Policy, logger *zap.Logger) *retryingService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &retryingService{
		next:   next,
		policy: policy,
		logger: logger,
	}
}

func (s *retryingService) Query(ctx context.Context, filter model.PriceFilter) ([]model.PriceRecord, error) {
	outcome := retry.Do(ctx, s.policy, s.logger, "retail prices", func(ctx context.Context) ([]model.PriceRecord, error) {
		records, err := s.next.Query(ctx, filter)
		switch {
		case errors.Is(err, model.ErrMalformedCatalog):
			return nil, retry.Permanent(err)
		case err != nil:
			return nil, err
		case len(records) == 0:
			return nil, retry.ErrEmpty
		}
		return records, nil
	})

	if outcome.Ok() || outcome.Empty() {
		return outcome.Value, nil
	}
	return nil, outcome.Err
}
