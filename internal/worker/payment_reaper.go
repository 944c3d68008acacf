package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/ecomarket/ecomarket/internal/domain/errors"
	"github.com/ecomarket/ecomarket/internal/domain/model"
	"github.com/ecomarket/ecomarket/internal/usecase"
)

// MarketFacade exposes the subset of application functionality required by the reaper.
type MarketFacade interface {
	StaleAwaitingPayment(ctx context.Context, before time.Time, limit int) ([]model.Order, error)
	AdvanceOrder(ctx context.Context, orderID int64, status model.OrderStatus, actorID int64, note string) (*model.Order, error)
}

// PaymentReaper periodically cancels UPI orders whose payment window expired
// without reconciliation. Orders verified between fetch and cancel are left
// alone: the row-locked transition rejects the cancel and the reaper moves on.
type PaymentReaper struct {
	facade       MarketFacade
	window       time.Duration
	pollInterval time.Duration
	batchSize    int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

const reaperWorkers = 4

// NewPaymentReaper constructs the stale payment sweeper.
func NewPaymentReaper(facade MarketFacade, window, pollInterval time.Duration, batchSize int, logger *slog.Logger) *PaymentReaper {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &PaymentReaper{
		facade:       facade,
		window:       window,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize),
	}
}

// Enabled reports whether sweeping is configured. A zero window disables the
// reaper entirely.
func (p *PaymentReaper) Enabled() bool {
	return p.window > 0
}

// Start launches background sweeping. A no-op when the reaper is disabled.
func (p *PaymentReaper) Start(ctx context.Context) {
	if !p.Enabled() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < reaperWorkers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *PaymentReaper) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *PaymentReaper) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *PaymentReaper) fetchAndDispatch(ctx context.Context) {
	before := time.Now().Add(-p.window)
	orders, err := p.facade.StaleAwaitingPayment(ctx, before, p.batchSize)
	if err != nil {
		p.logger.Error("fetch stale orders failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- order:
		}
	}
}

func (p *PaymentReaper) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-p.jobs:
			if !ok {
				return
			}
			p.expireOrder(ctx, order)
		}
	}
}

func (p *PaymentReaper) expireOrder(ctx context.Context, order model.Order) {
	_, err := p.facade.AdvanceOrder(ctx, order.ID, model.OrderStatusCancelled, usecase.SystemActor, "payment window expired")
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidTransition) || errors.Is(err, domainErrors.ErrNotFound) {
			// payment landed or the order moved on between fetch and cancel
			return
		}
		p.logger.Error("cancel expired order failed",
			slog.Int64("order_id", order.ID),
			slog.String("error", err.Error()),
		)
		return
	}

	p.logger.Info("order cancelled after payment window",
		slog.Int64("order_id", order.ID),
		slog.Duration("window", p.window),
	)
}
