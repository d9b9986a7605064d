package modules

import (
	"context"

	"riftrewind/api/handlers"
)

func initializeHealthHandler(deps *ModuleDependencies) *handlers.HealthHandler {
	return handlers.NewHealthHandler(map[string]handlers.Pinger{
		"database": handlers.PingFunc(func(ctx context.Context) error {
			sqlDB, err := deps.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
		"redis": deps.Redis,
	})
}
