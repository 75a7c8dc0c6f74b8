package fees

import (
	apperrors "cloud-fee/internal/errors"
)

var (
	queueCalculators = map[Provider]QueueFeeCalculator{
		ProviderAWSSQS:           NewAWSSQS(),
		ProviderCloudflareQueues: NewCloudflareQueues(),
	}

	serverlessCalculators = map[Provider]ServerlessFeeCalculator{
		ProviderAWSLambda:         NewAWSLambda(),
		ProviderCloudflareWorkers: NewCloudflareWorkers(),
	}

	storageCalculators = map[Provider]StorageFeeCalculator{
		ProviderAWSS3:        NewAWSS3(),
		ProviderCloudflareR2: NewCloudflareR2(),
	}

	databaseCalculators = map[Provider]DatabaseFeeCalculator{
		ProviderCloudflareD1: NewCloudflareD1(),
	}

	// Stable listing order per category
	providerOrder = map[Category][]Provider{
		CategoryQueue:      {ProviderAWSSQS, ProviderCloudflareQueues},
		CategoryServerless: {ProviderAWSLambda, ProviderCloudflareWorkers},
		CategoryStorage:    {ProviderAWSS3, ProviderCloudflareR2},
		CategoryDatabase:   {ProviderCloudflareD1},
	}
)

// ParseCategory validates a category name
func ParseCategory(name string) (Category, error) {
	c := Category(name)
	if _, ok := providerOrder[c]; !ok {
		return "", apperrors.Newf(apperrors.TypeInput, "unknown category: %s", name).
			WithContext("categories", Categories())
	}
	return c, nil
}

// Providers lists the provider keys of a category. Unknown categories
// return nil.
func Providers(category Category) []Provider {
	providers := providerOrder[category]
	out := make([]Provider, len(providers))
	copy(out, providers)
	return out
}

// LookupQueue returns the queue calculator for a provider key
func LookupQueue(provider string) (QueueFeeCalculator, error) {
	return lookup(queueCalculators, CategoryQueue, provider)
}

// LookupServerless returns the serverless calculator for a provider key
func LookupServerless(provider string) (ServerlessFeeCalculator, error) {
	return lookup(serverlessCalculators, CategoryServerless, provider)
}

// LookupStorage returns the storage calculator for a provider key
func LookupStorage(provider string) (StorageFeeCalculator, error) {
	return lookup(storageCalculators, CategoryStorage, provider)
}

// LookupDatabase returns the database calculator for a provider key
func LookupDatabase(provider string) (DatabaseFeeCalculator, error) {
	return lookup(databaseCalculators, CategoryDatabase, provider)
}

func lookup[C any](calculators map[Provider]C, category Category, provider string) (C, error) {
	if c, ok := calculators[Provider(provider)]; ok {
		return c, nil
	}
	var zero C
	return zero, apperrors.NotFound(string(category)+" provider", provider).
		WithContext("providers", Providers(category))
}
