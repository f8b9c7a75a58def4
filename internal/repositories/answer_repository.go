package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/masa-png/gadget-concierge-sub001/internal/models/db_models"
)

type AnswerRepository interface {
	// Upsert replaces any earlier answer for the same (session,
	// question) pair; the unique index resolves concurrent writes to
	// last-write-wins.
	Upsert(ctx context.Context, answer *db_models.Answer) error
	UpsertBatchTx(ctx context.Context, answers []*db_models.Answer) error
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]db_models.Answer, error)
	CountBySession(ctx context.Context, sessionID uuid.UUID) (int64, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

var answerConflict = clause.OnConflict{
	Columns: []clause.Column{{Name: "session_id"}, {Name: "question_id"}},
	DoUpdates: clause.AssignmentColumns([]string{
		"option_ids", "range_value", "text_value", "updated_at",
	}),
}

func (r *answerRepository) Upsert(ctx context.Context, answer *db_models.Answer) error {
	return r.db.WithContext(ctx).Clauses(answerConflict).Create(answer).Error
}

// UpsertBatchTx writes all answers or none.
func (r *answerRepository) UpsertBatchTx(ctx context.Context, answers []*db_models.Answer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, answer := range answers {
			if err := tx.Clauses(answerConflict).Create(answer).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *answerRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]db_models.Answer, error) {
	var answers []db_models.Answer
	err := r.db.WithContext(ctx).
		Preload("Question").
		Preload("Question.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *answerRepository) CountBySession(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Answer{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	return count, err
}
