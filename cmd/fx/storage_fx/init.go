package storage_fx

import (
	"go.uber.org/fx"

	"spotcheck/internal/services"
)

var Module = fx.Provide(
	provideStorage)

func provideStorage() (services.PhotoStorage, error) {
	return services.NewS3PhotoStorage()
}
