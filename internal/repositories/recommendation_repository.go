package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/masa-png/gadget-concierge-sub001/internal/models/db_models"
	"github.com/masa-png/gadget-concierge-sub001/pkg/utils"
)

type RecommendationRepository interface {
	ExistsForSession(ctx context.Context, sessionID uuid.UUID) (bool, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]db_models.Recommendation, error)

	// CreateBatchTx re-checks existence inside the transaction so two
	// concurrent generations for one session cannot both write; the
	// unique (session_id, rank) index backs this up at the storage
	// layer. The profile's recommendation counter is bumped in the same
	// transaction.
	CreateBatchTx(ctx context.Context, userProfileID uuid.UUID, recommendations []*db_models.Recommendation) error
}

type recommendationRepository struct {
	db *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

func (r *recommendationRepository) ExistsForSession(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Recommendation{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recommendationRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]db_models.Recommendation, error) {
	var recommendations []db_models.Recommendation
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("session_id = ?", sessionID).
		Order("rank ASC").
		Find(&recommendations).Error
	if err != nil {
		return nil, err
	}
	return recommendations, nil
}

func (r *recommendationRepository) CreateBatchTx(ctx context.Context, userProfileID uuid.UUID, recommendations []*db_models.Recommendation) error {
	if len(recommendations) == 0 {
		return nil
	}
	sessionID := recommendations[0].SessionID

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&db_models.Recommendation{}).
			Where("session_id = ?", sessionID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return utils.ErrAlreadyGenerated
		}

		for _, recommendation := range recommendations {
			if err := tx.Create(recommendation).Error; err != nil {
				return err
			}
		}

		return tx.Model(&db_models.UserProfile{}).
			Where("id = ?", userProfileID).
			UpdateColumn("recommendation_count",
				gorm.Expr("recommendation_count + ?", 1)).Error
	})
}
