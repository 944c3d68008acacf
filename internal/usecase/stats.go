package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/ecomarket/ecomarket/internal/adapter/cache"
	"github.com/ecomarket/ecomarket/internal/domain/model"
	"github.com/ecomarket/ecomarket/internal/domain/repository"
)

const (
	statsCacheKey = "ecomarket:stats:summary"
	statsCacheTTL = 30 * time.Second
	recentOrders  = 5
)

// StatsUseCase aggregates marketplace counters with a cache-aside Redis
// read-through. Cache failures degrade to direct reads.
type StatsUseCase struct {
	users    repository.UserRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
	cache    cache.Cache
	logger   *slog.Logger
}

// NewStatsUseCase constructs StatsUseCase.
func NewStatsUseCase(users repository.UserRepository, products repository.ProductRepository, orders repository.OrderRepository, c cache.Cache, logger *slog.Logger) *StatsUseCase {
	return &StatsUseCase{users: users, products: products, orders: orders, cache: c, logger: logger}
}

// Summary returns marketplace counters and the most recent orders.
func (u *StatsUseCase) Summary(ctx context.Context) (*model.StatsSummary, error) {
	if cached, err := u.cache.Get(ctx, statsCacheKey); err != nil {
		u.logger.Warn("stats cache read failed", slog.String("error", err.Error()))
	} else if cached != "" {
		var summary model.StatsSummary
		if err := json.Unmarshal([]byte(cached), &summary); err == nil {
			return &summary, nil
		}
	}

	summary := &model.StatsSummary{}
	var err error
	if summary.UserCount, err = u.users.Count(ctx); err != nil {
		return nil, err
	}
	if summary.ProductCount, err = u.products.Count(ctx); err != nil {
		return nil, err
	}
	if summary.OrderCount, err = u.orders.Count(ctx); err != nil {
		return nil, err
	}
	if summary.RecentOrders, err = u.orders.Recent(ctx, recentOrders); err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(summary); err == nil {
		if err := u.cache.Set(ctx, statsCacheKey, string(encoded), statsCacheTTL); err != nil {
			u.logger.Warn("stats cache write failed", slog.String("error", err.Error()))
		}
	}

	return summary, nil
}
