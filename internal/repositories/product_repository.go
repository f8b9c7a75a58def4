package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/masa-png/gadget-concierge-sub001/internal/models/db_models"
)

type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*db_models.Product, error)
	ListByCategory(ctx context.Context, categoryID string, page, pageSize int) ([]db_models.Product, error)
	TopRatedByCategory(ctx context.Context, categoryID uuid.UUID, limit int) ([]db_models.Product, error)
	ListByIDs(ctx context.Context, ids []string) ([]db_models.Product, error)

	// UpsertByExternalURL is the ingestion write path: an existing row
	// keyed by external_url is refreshed, a new one is created only if
	// absent.
	UpsertByExternalURL(ctx context.Context, product *db_models.Product) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*db_models.Product, error) {
	var product db_models.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) ListByCategory(ctx context.Context, categoryID string, page, pageSize int) ([]db_models.Product, error) {
	var products []db_models.Product
	offset := (page - 1) * pageSize

	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("rating DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) TopRatedByCategory(ctx context.Context, categoryID uuid.UUID, limit int) ([]db_models.Product, error) {
	var products []db_models.Product
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("rating DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) ListByIDs(ctx context.Context, ids []string) ([]db_models.Product, error) {
	var products []db_models.Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) UpsertByExternalURL(ctx context.Context, product *db_models.Product) error {
	product.LastSyncedAt = time.Now().Unix()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "external_url"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "description", "price", "rating", "features",
			"image_url", "review_count", "shop_name", "tags",
			"last_synced_at", "updated_at",
		}),
	}).Create(product).Error
}
