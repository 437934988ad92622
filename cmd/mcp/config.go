package main

import (
	"github.com/elC0mpa/azure-storage-doctor/config"
	"github.com/spf13/viper"
)

// Config holds the environment based configuration of the server. Every
// STORAGE_DOCTOR_* variable of the CLI applies here too.
type Config struct {
	Settings            config.Config
	AzureSubscriptionID string
}

// LoadConfig reads configuration from environment variables
func LoadConfig() (*Config, error) {
	v := viper.New()
	config.SetDefaults(v)

	settings, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	return &Config{
		Settings:            settings,
		AzureSubscriptionID: settings.Subscription,
	}, nil
}

// HasAzure returns true if a default subscription is configured
func (c *Config) HasAzure() bool {
	return c.AzureSubscriptionID != ""
}
