package catalog_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripcraft/cmd/fx/db_fx"
	"tripcraft/internal/catalog"
	"tripcraft/internal/config"
	"tripcraft/internal/repositories"
	"tripcraft/internal/services"
)

const loadTimeout = 30 * time.Second

// Module selects where the catalog is loaded from. Only the postgres source opens a database.
func Module(source config.CatalogSource) fx.Option {
	if source == config.CatalogSourcePostgres {
		return fx.Options(
			db_fx.Module,
			fx.Provide(repositories.NewCatalogRepository, provideCatalogFromRepository),
		)
	}
	return fx.Provide(provideSeedCatalog)
}

func provideSeedCatalog(logger *zap.Logger) (*catalog.Catalog, error) {
	cat, err := catalog.Seed()
	if err != nil {
		return nil, err
	}
	logger.Info("catalog loaded", zap.String("source", "seed"), zap.String("version", cat.Version()), zap.Int("destinations", len(cat.Keys())))
	return cat, nil
}

func provideCatalogFromRepository(repo repositories.CatalogRepository, logger *zap.Logger) (*catalog.Catalog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	return services.LoadCatalogFromRepository(ctx, repo, logger)
}
