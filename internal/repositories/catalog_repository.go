package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"tripcraft/internal/catalog"
	"tripcraft/internal/models/db_models"
	"tripcraft/internal/models/trip_models"
)

type CatalogRepository interface {
	Migrate(ctx context.Context) error
	CountDestinations(ctx context.Context) (int64, error)
	ImportDocument(ctx context.Context, doc catalog.SeedDocument) error
	LoadCatalog(ctx context.Context) (*catalog.Catalog, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(
		&db_models.CatalogRelease{},
		&db_models.CatalogDestination{},
		&db_models.CatalogActivity{},
	)
}

func (r *catalogRepository) CountDestinations(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&db_models.CatalogDestination{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ImportDocument writes a whole dataset in one transaction.
func (r *catalogRepository) ImportDocument(ctx context.Context, doc catalog.SeedDocument) error {
	release, destinations := DocumentToRows(doc)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&release).Error; err != nil {
			return fmt.Errorf("insert catalog release: %w", err)
		}
		for i := range destinations {
			if err := tx.Create(&destinations[i]).Error; err != nil {
				return fmt.Errorf("insert destination %s: %w", destinations[i].Key, err)
			}
		}
		return nil
	})
}

func (r *catalogRepository) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	db := r.db.WithContext(ctx)

	var release db_models.CatalogRelease
	err := db.Order("created_at DESC").First(&release).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var rows []db_models.CatalogDestination
	err = db.
		Preload("Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("category ASC, position ASC")
		}).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return catalog.New(release.Version, RowsToDestinations(rows))
}

// DocumentToRows converts a dataset into table rows, keeping document order in Position columns.
func DocumentToRows(doc catalog.SeedDocument) (db_models.CatalogRelease, []db_models.CatalogDestination) {
	release := db_models.CatalogRelease{Version: doc.Version}
	rows := make([]db_models.CatalogDestination, 0, len(doc.Destinations))

	for pos, sd := range doc.Destinations {
		row := db_models.CatalogDestination{
			Key:      sd.Key,
			Name:     sd.Name,
			Country:  sd.Country,
			Locale:   sd.Locale,
			ImageURL: sd.Image,
			Aliases:  append([]string(nil), sd.Aliases...),
			Position: pos,
		}
		if row.Name == "" {
			row.Name = sd.Key
		}

		categories := make([]string, 0, len(sd.Activities))
		for category := range sd.Activities {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			for i, name := range sd.Activities[category] {
				row.Activities = append(row.Activities, db_models.CatalogActivity{
					Category: strings.ToLower(category),
					Name:     name,
					Position: i,
				})
			}
		}
		rows = append(rows, row)
	}
	return release, rows
}

// RowsToDestinations is the inverse of DocumentToRows. Rows and activities are re-sorted by Position.
func RowsToDestinations(rows []db_models.CatalogDestination) []catalog.Destination {
	sorted := append([]db_models.CatalogDestination(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })

	out := make([]catalog.Destination, 0, len(sorted))
	for _, row := range sorted {
		activities := append([]db_models.CatalogActivity(nil), row.Activities...)
		sort.SliceStable(activities, func(i, j int) bool { return activities[i].Position < activities[j].Position })

		d := catalog.Destination{
			Key:        row.Key,
			Name:       row.Name,
			Country:    row.Country,
			Locale:     row.Locale,
			ImageURL:   row.ImageURL,
			Aliases:    append([]string(nil), row.Aliases...),
			Activities: make(map[trip_models.Interest][]string),
		}
		for _, a := range activities {
			category := trip_models.Interest(a.Category)
			d.Activities[category] = append(d.Activities[category], a.Name)
		}
		out = append(out, d)
	}
	return out
}
