package azureconfig

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

type service struct {
	subscriptionID string
	credential     azcore.TokenCredential
}

// CredentialService hands out the credential and the fallback subscription
type CredentialService interface {
	GetCredential() azcore.TokenCredential
	GetSubscriptionID() string
}
