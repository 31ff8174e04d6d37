// cmd/fx/trip_fx/init.go
package trip_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripcraft/internal/catalog"
	"tripcraft/internal/config"
	"tripcraft/internal/extraction"
	"tripcraft/internal/services"
	mem "tripcraft/pkg/memcache"
)

var Module = fx.Provide(
	ProvideExtractor,
	ProvideTripService,
	ProvideCatalogService)

// ProvideExtractor builds the preference extractor over the loaded catalog.
func ProvideExtractor(cat *catalog.Catalog, cfg config.Config, logger *zap.Logger) *extraction.Extractor {
	if cfg.Trip.DefaultDestination != "" {
		if _, ok := cat.Lookup(cfg.Trip.DefaultDestination); !ok {
			logger.Warn("default destination is not in the catalog, using the first catalog entry",
				zap.String("default_destination", cfg.Trip.DefaultDestination))
		}
	}
	return extraction.New(cat, extraction.Options{
		DefaultDestination: cfg.Trip.DefaultDestination,
		Fallback:           extraction.FallbackPolicy(cfg.Trip.DestinationFallback),
		DefaultDays:        cfg.Trip.DefaultDays,
	})
}

func ProvideTripService(
	cat *catalog.Catalog,
	extractor *extraction.Extractor,
	drafts mem.DraftStore,
	logger *zap.Logger,
	cfg config.Config,
) services.TripServiceInterface {
	return services.NewTripService(cat, extractor, drafts, logger.Named("trip"), services.TripServiceConfig{
		DraftTTL: cfg.Trip.DraftTTL,
		MaxDays:  cfg.Trip.MaxDays,
	})
}

func ProvideCatalogService(cat *catalog.Catalog) services.CatalogServiceInterface {
	return services.NewCatalogService(cat)
}
