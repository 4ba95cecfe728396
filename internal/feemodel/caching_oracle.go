package feemodel

import (
	"context"
	"sync"
	"time"

	"github.com/caesar-terminal/arbiter/internal/money"
	"go.uber.org/zap"
)

// CachingGasOracle wraps a slow upstream oracle (an HTTP gas station) with
// a periodically refreshed cache, so the Strategy engine's synchronous fee
// evaluation never blocks on the network. Until the first refresh succeeds
// it serves a configured conservative fallback — assuming expensive gas
// suppresses borderline signals, assuming free gas manufactures them.
type CachingGasOracle struct {
	upstream GasOracle
	interval time.Duration
	fallback money.Cents
	logger   *zap.Logger

	mu     sync.RWMutex
	cached money.Cents
	loaded bool
}

// NewCachingGasOracle creates a cache over upstream, refreshed every
// interval once Run is started.
func NewCachingGasOracle(upstream GasOracle, interval time.Duration, fallback money.Cents, logger *zap.Logger) *CachingGasOracle {
	return &CachingGasOracle{
		upstream: upstream,
		interval: interval,
		fallback: fallback,
		logger:   logger,
	}
}

// Estimate implements GasOracle from the cache; it never performs I/O.
func (o *CachingGasOracle) Estimate(context.Context) (money.Cents, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if !o.loaded {
		return o.fallback, nil
	}
	return o.cached, nil
}

// Run refreshes the cache until ctx is cancelled. A failed refresh keeps
// the previous value; a never-succeeded refresh keeps the fallback.
func (o *CachingGasOracle) Run(ctx context.Context) {
	o.refresh(ctx)
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.refresh(ctx)
		}
	}
}

func (o *CachingGasOracle) refresh(ctx context.Context) {
	estimate, err := o.upstream.Estimate(ctx)
	if err != nil {
		if o.logger != nil {
			o.logger.Warn("gasoracle: refresh failed, serving last known value", zap.Error(err))
		}
		return
	}
	o.mu.Lock()
	o.cached = estimate
	o.loaded = true
	o.mu.Unlock()
}

var _ GasOracle = (*CachingGasOracle)(nil)
