package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/masa-png/gadget-concierge-sub001/internal/models/db_models"
)

type QuestionRepository interface {
	GetByIDWithOptions(ctx context.Context, id string) (*db_models.Question, error)
	ListByCategory(ctx context.Context, categoryID string) ([]db_models.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) GetByIDWithOptions(ctx context.Context, id string) (*db_models.Question, error) {
	var question db_models.Question
	err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&question, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

// ListByCategory returns questions in creation order, options preloaded
// in their own creation order.
func (r *questionRepository) ListByCategory(ctx context.Context, categoryID string) ([]db_models.Question, error) {
	var questions []db_models.Question
	err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("category_id = ?", categoryID).
		Order("created_at ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}
