package spots_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"spotcheck/internal/api/controllers"
	"spotcheck/internal/repositories"
	"spotcheck/internal/services"
)

var Module = fx.Provide(
	provideSpotRepo, provideSpotService, provideSpotsController)

func provideSpotRepo(db *gorm.DB) repositories.SpotRepository {
	return repositories.NewSpotRepository(db)
}

func provideSpotService(spotRepo repositories.SpotRepository, tourAPI services.TourAPIClientInterface) services.SpotServiceInterface {
	return services.NewSpotService(spotRepo, tourAPI)
}

func provideSpotsController(spotService services.SpotServiceInterface, provider controllers.DemoManagerProvider) *controllers.SpotsController {
	return controllers.NewSpotsController(spotService, provider)
}
