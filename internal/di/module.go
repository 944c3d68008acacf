package di

import (
	"go.uber.org/fx"

	"github.com/ecomarket/ecomarket/internal/adapter/cache"
	"github.com/ecomarket/ecomarket/internal/app"
	"github.com/ecomarket/ecomarket/internal/config"
	"github.com/ecomarket/ecomarket/internal/logger"
	"github.com/ecomarket/ecomarket/internal/pkg/auth"
	"github.com/ecomarket/ecomarket/internal/server/http/handlers"
	"github.com/ecomarket/ecomarket/internal/server/http/router"
	"github.com/ecomarket/ecomarket/internal/storage/postgres"
	"github.com/ecomarket/ecomarket/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		cache.Module,
		usecase.Module,
		fx.Provide(func(s *postgres.Storage) app.HealthChecker { return s }),
		fx.Provide(func(f *app.MarketFacade) handlers.MarketFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
