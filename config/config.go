// Package config resolves the immutable settings of a comparison run from
// defaults, an optional YAML file, STORAGE_DOCTOR_* environment variables
// and command line flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/elC0mpa/azure-storage-doctor/logging"
	"github.com/elC0mpa/azure-storage-doctor/model"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override
const EnvPrefix = "STORAGE_DOCTOR"

// Viper keys
const (
	KeyRegion             = "region"
	KeySubscription       = "subscription"
	KeyFXRate             = "pricing.fx_rate"
	KeyCurrency           = "pricing.currency"
	KeyHoursPerMonth      = "pricing.hours_per_month"
	KeyIOPSFreeTier       = "pricing.iops_free_tier"
	KeyThroughputFreeTier = "pricing.throughput_free_tier"
	KeyRetryAttempts      = "retry.attempts"
	KeyRetryDelay         = "retry.delay"
	KeyUsageFallbackGB    = "usage.fallback_gb"
	KeyUsageMetric        = "usage.metric"
	KeyUsageInterval      = "usage.interval"
	KeyCatalogURL         = "catalog.base_url"
	KeyCatalogTimeout     = "catalog.timeout"
	KeyCatalogCacheTTL    = "catalog.cache_ttl"
	KeyBlobResults        = "output.blob_results"
	KeyDiskResults        = "output.disk_results"
	KeyLogLevel           = "log.level"
	KeyLogFormat          = "log.format"
	KeyLogOutput          = "log.output"
)

// Config is passed by value to every gateway and to the calculator
type Config struct {
	DefaultRegion string
	Subscription  string
	Pricing       PricingConfig
	Retry         RetryConfig
	Usage         UsageConfig
	Catalog       CatalogConfig
	Output        OutputConfig
	Logging       logging.Config
}

// PricingConfig holds the billing constants of the cost aggregator
type PricingConfig struct {
	// FXRate converts catalog (USD) prices into Currency
	FXRate             decimal.Decimal
	Currency           string
	HoursPerMonth      decimal.Decimal
	IOPSFreeTier       decimal.Decimal
	ThroughputFreeTier decimal.Decimal
}

// RetryConfig bounds every external call
type RetryConfig struct {
	Attempts int
	Delay    time.Duration
}

// UsageConfig controls the capacity metric lookup
type UsageConfig struct {
	FallbackGB decimal.Decimal
	Metric     string
	Interval   string
}

// CatalogConfig points at the retail prices API
type CatalogConfig struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// OutputConfig holds the progress store locations per report
type OutputConfig struct {
	BlobResultsFile string
	DiskResultsFile string
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		DefaultRegion: "uksouth",
		Pricing: PricingConfig{
			FXRate:             decimal.RequireFromString("0.75"),
			Currency:           "GBP",
			HoursPerMonth:      decimal.NewFromInt(730),
			IOPSFreeTier:       decimal.NewFromInt(3000),
			ThroughputFreeTier: decimal.NewFromInt(125),
		},
		Retry: RetryConfig{
			Attempts: 3,
			Delay:    10 * time.Second,
		},
		Usage: UsageConfig{
			FallbackGB: decimal.NewFromInt(1000),
			Metric:     "UsedCapacity",
			Interval:   "PT1H",
		},
		Catalog: CatalogConfig{
			BaseURL:  "https://prices.azure.com/api/retail/prices",
			Timeout:  30 * time.Second,
			CacheTTL: time.Hour,
		},
		Output: OutputConfig{
			BlobResultsFile: "results/blob_price_results.json",
			DiskResultsFile: "results/disk_price_results.json",
		},
		Logging: logging.DefaultConfig(),
	}
}

// SetDefaults registers the built-in settings on v and enables environment
// overrides such as STORAGE_DOCTOR_PRICING_FX_RATE
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault(KeyRegion, d.DefaultRegion)
	v.SetDefault(KeySubscription, d.Subscription)
	v.SetDefault(KeyFXRate, d.Pricing.FXRate.String())
	v.SetDefault(KeyCurrency, d.Pricing.Currency)
	v.SetDefault(KeyHoursPerMonth, d.Pricing.HoursPerMonth.String())
	v.SetDefault(KeyIOPSFreeTier, d.Pricing.IOPSFreeTier.String())
	v.SetDefault(KeyThroughputFreeTier, d.Pricing.ThroughputFreeTier.String())
	v.SetDefault(KeyRetryAttempts, d.Retry.Attempts)
	v.SetDefault(KeyRetryDelay, d.Retry.Delay)
	v.SetDefault(KeyUsageFallbackGB, d.Usage.FallbackGB.String())
	v.SetDefault(KeyUsageMetric, d.Usage.Metric)
	v.SetDefault(KeyUsageInterval, d.Usage.Interval)
	v.SetDefault(KeyCatalogURL, d.Catalog.BaseURL)
	v.SetDefault(KeyCatalogTimeout, d.Catalog.Timeout)
	v.SetDefault(KeyCatalogCacheTTL, d.Catalog.CacheTTL)
	v.SetDefault(KeyBlobResults, d.Output.BlobResultsFile)
	v.SetDefault(KeyDiskResults, d.Output.DiskResultsFile)
	v.SetDefault(KeyLogLevel, d.Logging.Level)
	v.SetDefault(KeyLogFormat, d.Logging.Format)
	v.SetDefault(KeyLogOutput, d.Logging.Output)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AZURE_SUBSCRIPTION_ID is accepted as well
	_ = v.BindEnv(KeySubscription, EnvPrefix+"_SUBSCRIPTION", "AZURE_SUBSCRIPTION_ID")
}

// Load reads the resolved settings out of v and validates them
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		DefaultRegion: v.GetString(KeyRegion),
		Subscription:  v.GetString(KeySubscription),
		Retry: RetryConfig{
			Attempts: v.GetInt(KeyRetryAttempts),
			Delay:    v.GetDuration(KeyRetryDelay),
		},
		Usage: UsageConfig{
			Metric:   v.GetString(KeyUsageMetric),
			Interval: v.GetString(KeyUsageInterval),
		},
		Catalog: CatalogConfig{
			BaseURL:  v.GetString(KeyCatalogURL),
			Timeout:  v.GetDuration(KeyCatalogTimeout),
			CacheTTL: v.GetDuration(KeyCatalogCacheTTL),
		},
		Output: OutputConfig{
			BlobResultsFile: v.GetString(KeyBlobResults),
			DiskResultsFile: v.GetString(KeyDiskResults),
		},
		Logging: logging.Config{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
			Output: v.GetString(KeyLogOutput),
		},
	}
	cfg.Pricing.Currency = v.GetString(KeyCurrency)

	decimals := []struct {
		key    string
		target *decimal.Decimal
	}{
		{KeyFXRate, &cfg.Pricing.FXRate},
		{KeyHoursPerMonth, &cfg.Pricing.HoursPerMonth},
		{KeyIOPSFreeTier, &cfg.Pricing.IOPSFreeTier},
		{KeyThroughputFreeTier, &cfg.Pricing.ThroughputFreeTier},
		{KeyUsageFallbackGB, &cfg.Usage.FallbackGB},
	}
	for _, d := range decimals {
		value, err := decimal.NewFromString(v.GetString(d.key))
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", model.ErrInvalidInput, d.key, err)
		}
		*d.target = value
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the calculator cannot work with
func (c Config) Validate() error {
	switch {
	case !c.Pricing.FXRate.IsPositive():
		return fmt.Errorf("%w: %s must be positive", model.ErrInvalidInput, KeyFXRate)
	case !c.Pricing.HoursPerMonth.IsPositive():
		return fmt.Errorf("%w: %s must be positive", model.ErrInvalidInput, KeyHoursPerMonth)
	case c.Pricing.IOPSFreeTier.IsNegative(), c.Pricing.ThroughputFreeTier.IsNegative():
		return fmt.Errorf("%w: free tier minimums cannot be negative", model.ErrInvalidInput)
	case c.Usage.FallbackGB.IsNegative():
		return fmt.Errorf("%w: %s cannot be negative", model.ErrInvalidInput, KeyUsageFallbackGB)
	case c.Retry.Attempts < 1:
		return fmt.Errorf("%w: %s must be at least 1", model.ErrInvalidInput, KeyRetryAttempts)
	case c.Retry.Delay < 0:
		return fmt.Errorf("%w: %s cannot be negative", model.ErrInvalidInput, KeyRetryDelay)
	case c.DefaultRegion == "":
		return fmt.Errorf("%w: %s is required", model.ErrInvalidInput, KeyRegion)
	case c.Catalog.BaseURL == "":
		return fmt.Errorf("%w: %s is required", model.ErrInvalidInput, KeyCatalogURL)
	}
	return nil
}

// ResultsFile is the progress store path of the report
func (c Config) ResultsFile(kind model.ReportKind) string {
	if kind == model.ReportDisk {
		return c.Output.DiskResultsFile
	}
	return c.Output.BlobResultsFile
}
