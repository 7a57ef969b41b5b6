package checkin_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"spotcheck/internal/api/controllers"
	"spotcheck/internal/repositories"
	"spotcheck/internal/services"
)

var Module = fx.Provide(
	provideCheckInRepo, provideCheckInService, provideCheckInController)

func provideCheckInRepo(db *gorm.DB) repositories.CheckInRepository {
	return repositories.NewCheckInRepository(db)
}

func provideCheckInService(
	checkInRepo repositories.CheckInRepository,
	accountRepo repositories.AccountRepository,
	spotRepo repositories.SpotRepository,
	storage services.PhotoStorage,
) services.CheckInServiceInterface {
	return services.NewCheckInService(checkInRepo, accountRepo, spotRepo, storage)
}

func provideCheckInController(checkInService services.CheckInServiceInterface) *controllers.CheckInController {
	return controllers.NewCheckInController(checkInService)
}
