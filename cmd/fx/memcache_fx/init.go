package memcache_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripcraft/internal/config"
	mem "tripcraft/pkg/memcache"
)

var Module = fx.Provide(provideDraftStore)

func provideDraftStore(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) mem.DraftStore {
	store := mem.NewDrafts()
	stop := make(chan struct{})
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go sweep(store, cfg.Trip.DraftSweepInterval, logger, stop, done)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(stop)
			select {
			case <-done:
			case <-ctx.Done():
			}
			return nil
		},
	})
	return store
}

func sweep(store mem.DraftStore, every time.Duration, logger *zap.Logger, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := store.Sweep(); n > 0 {
				logger.Debug("expired drafts removed", zap.Int("count", n))
			}
		case <-stop:
			return
		}
	}
}
