package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ecomarket/ecomarket/internal/usecase"
	"time"

	"github.com/ecomarket/ecomarket/internal/domain/model"
	testhelpers "github.com/ecomarket/ecomarket/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestStatsSummaryReadsRepositories(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	products := testhelpers.NewProductRepositoryStub()
	orders := testhelpers.NewOrderRepositoryStub()
	cache := &testhelpers.CacheStub{}

	ctx := context.Background()
	if _, err := users.Create(ctx, &model.User{Email: "a@b.c"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if _, err := products.Create(ctx, &model.Product{Name: "x"}); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	orders.Seed(&model.Order{ID: 1, BuyerID: 1, Status: model.OrderStatusPending})

	uc := usecase.NewStatsUseCase(users, products, orders, cache, discardLogger())
	summary, err := uc.Summary(ctx)
	if err != nil {
		t.Fatalf("summary returned error: %v", err)
	}
	if summary.UserCount != 1 || summary.ProductCount != 1 || summary.OrderCount != 1 {
		t.Fatalf("unexpected counters: %+v", summary)
	}
	if len(summary.RecentOrders) != 1 {
		t.Fatalf("expected 1 recent order, got %d", len(summary.RecentOrders))
	}
	if cache.Sets != 1 {
		t.Fatalf("expected summary to be cached, sets=%d", cache.Sets)
	}
}

func TestStatsSummaryServedFromCache(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	users.Err = errors.New("db down")
	cached, _ := json.Marshal(model.StatsSummary{UserCount: 7, ProductCount: 8, OrderCount: 9})
	cache := &testhelpers.CacheStub{Values: map[string]string{
		"ecomarket:stats:summary": string(cached),
	}}

	uc := usecase.NewStatsUseCase(users, testhelpers.NewProductRepositoryStub(), testhelpers.NewOrderRepositoryStub(), cache, discardLogger())
	summary, err := uc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary returned error: %v", err)
	}
	if summary.UserCount != 7 || summary.ProductCount != 8 || summary.OrderCount != 9 {
		t.Fatalf("cached summary not used: %+v", summary)
	}
}

func TestStatsSummaryDegradesOnCacheFailure(t *testing.T) {
	cache := &testhelpers.CacheStub{
		GetFn: func(context.Context, string) (string, error) { return "", errors.New("redis down") },
		SetFn: func(context.Context, string, string, time.Duration) error { return errors.New("redis down") },
	}

	uc := usecase.NewStatsUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.NewProductRepositoryStub(), testhelpers.NewOrderRepositoryStub(), cache, discardLogger())
	summary, err := uc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary returned error: %v", err)
	}
	if summary.UserCount != 0 || summary.OrderCount != 0 {
		t.Fatalf("unexpected counters: %+v", summary)
	}
}
