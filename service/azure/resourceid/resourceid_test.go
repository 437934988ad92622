package resourceid

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/elC0mpa/azure-storage-doctor/service/retry"
	"github.com/stretchr/testify/assert"
)

const diskID = "/subscriptions/0000/resourceGroups/rg-data/providers/Microsoft.Compute/disks/data-disk-01"

func responseError(status int) *azcore.ResponseError {
	req, _ := http.NewRequest(http.MethodGet, "https://management.azure.com"+diskID, nil)
	return &azcore.ResponseError{
		StatusCode:  status,
		RawResponse: &http.Response{StatusCode: status, Status: http.StatusText(status), Request: req, Body: http.NoBody},
	}
}

func TestParse(t *testing.T) {
	assert.Equal(t, "data-disk-01", Name(diskID))
	assert.Equal(t, "rg-data", ResourceGroup(diskID))
	assert.Equal(t, "rg-data", ResourceGroup("/subscriptions/0000/resourcegroups/rg-data"))
	assert.Equal(t, "", ResourceGroup("/subscriptions/0000"))
	assert.Equal(t,
		"/subscriptions/sub/resourceGroups/rg/providers/Microsoft.Storage/storageAccounts/acct",
		StorageAccount("sub", "rg", "acct"))
}

func TestClassify(t *testing.T) {
	policy := retry.Policy{Attempts: 3, Delay: time.Millisecond}

	notFound := responseError(http.StatusNotFound)
	outcome := retry.Do(context.Background(), policy, nil, "test", func(context.Context) (int, error) {
		return 0, Classify(notFound)
	})
	assert.Equal(t, 1, outcome.Attempts)
	assert.ErrorIs(t, outcome.Err, notFound)

	throttled := responseError(http.StatusTooManyRequests)
	outcome = retry.Do(context.Background(), policy, nil, "test", func(context.Context) (int, error) {
		return 0, Classify(throttled)
	})
	assert.Equal(t, 3, outcome.Attempts)

	plain := errors.New("dial tcp: timeout")
	assert.Equal(t, plain, Classify(plain))
}
