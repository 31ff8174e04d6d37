package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tripcraft/internal/catalog"
	"tripcraft/internal/repositories"
	"tripcraft/pkg/utils"
)

// LoadCatalogFromRepository migrates the catalog tables, imports the embedded seed when they are empty,
// and reads the resulting dataset.
func LoadCatalogFromRepository(ctx context.Context, repo repositories.CatalogRepository, logger *zap.Logger) (*catalog.Catalog, error) {
	if err := repo.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("%w: migrate catalog: %v", utils.ErrDatabaseError, err)
	}

	count, err := repo.CountDestinations(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: count destinations: %v", utils.ErrDatabaseError, err)
	}

	if count == 0 {
		doc, err := catalog.SeedDocumentFromEmbedded()
		if err != nil {
			return nil, err
		}
		if err := repo.ImportDocument(ctx, doc); err != nil {
			return nil, fmt.Errorf("%w: import seed: %v", utils.ErrDatabaseError, err)
		}
		logger.Info("catalog tables seeded", zap.String("version", doc.Version), zap.Int("destinations", len(doc.Destinations)))
	}

	cat, err := repo.LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrCatalogUnavailable, err)
	}
	if len(cat.Keys()) == 0 {
		return nil, fmt.Errorf("%w: catalog has no destinations", utils.ErrCatalogUnavailable)
	}

	logger.Info("catalog loaded", zap.String("source", "postgres"), zap.String("version", cat.Version()), zap.Int("destinations", len(cat.Keys())))
	return cat, nil
}
