package modules

import (
	"riftrewind/api/cache"
	recaprepo "riftrewind/api/repositories/recap"
	recapservice "riftrewind/api/services/recap"
)

func initializeRecapService(deps *ModuleDependencies) *recapservice.RecapService {
	recapCache := cache.NewRecapCache(deps.Redis)

	recapDeps := &recapservice.RecapServiceDeps{
		Repository: recaprepo.NewRecapRepository(deps.DB),
		Cache:      recapCache,
		Riot:       deps.Riot,
		Items:      deps.Items,
		Logger:     deps.Logger,
		Metrics:    deps.Metrics,
		Config:     deps.Config.Recap,
		Location:   deps.Config.Location(),
	}

	return recapservice.NewRecapService(recapDeps)
}
