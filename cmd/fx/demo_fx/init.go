package demo_fx

import (
	"go.uber.org/fx"

	"spotcheck/internal/api/controllers"
	mem "spotcheck/pkg/memcache"
)

var Module = fx.Provide(
	provideDemoStateStore, provideDemoManagerProvider, provideDemoController)

func provideDemoStateStore() mem.DemoStateStore {
	return mem.NewDemoStates()
}

func provideDemoManagerProvider(store mem.DemoStateStore) controllers.DemoManagerProvider {
	return controllers.NewDemoManagerProvider(store)
}

func provideDemoController(provider controllers.DemoManagerProvider) *controllers.DemoController {
	return controllers.NewDemoController(provider)
}
