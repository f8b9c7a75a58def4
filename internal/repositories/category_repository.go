package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/masa-png/gadget-concierge-sub001/internal/models/db_models"
)

type CategoryRepository interface {
	GetByID(ctx context.Context, id string) (*db_models.Category, error)
	ListRoots(ctx context.Context) ([]db_models.Category, error)
	ListChildren(ctx context.Context, parentID string) ([]db_models.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*db_models.Category, error) {
	var category db_models.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ListRoots(ctx context.Context) ([]db_models.Category, error) {
	var categories []db_models.Category
	err := r.db.WithContext(ctx).
		Where("parent_id IS NULL").
		Order("created_at ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// ListChildren returns one level of the tree; callers walk down a level
// at a time instead of loading the whole subtree.
func (r *categoryRepository) ListChildren(ctx context.Context, parentID string) ([]db_models.Category, error) {
	var categories []db_models.Category
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
