package tourapi_fx

import (
	"go.uber.org/fx"

	"spotcheck/internal/services"
)

var Module = fx.Provide(
	provideSpotCache, provideTourAPIClient)

func provideSpotCache() services.SpotDetailCache {
	return services.NewInMemorySpotCache()
}

func provideTourAPIClient(cache services.SpotDetailCache) services.TourAPIClientInterface {
	return services.NewTourAPIClient(cache)
}
