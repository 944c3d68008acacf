package cache

import (
	"context"

	"go.uber.org/fx"

	"github.com/ecomarket/ecomarket/internal/config"
)

// Module wires the statistics cache, falling back to a no-op when Redis is
// not configured.
var Module = fx.Provide(newCache)

type cacheParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
}

func newCache(p cacheParams) Cache {
	if p.Config.RedisAddress == "" {
		return Noop{}
	}
	c := NewRedis(p.Config.RedisAddress)
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return c.Close()
		},
	})
	return c
}
