package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/masa-png/gadget-concierge-sub001/internal/models/db_models"
	"github.com/masa-png/gadget-concierge-sub001/pkg/utils"
)

type SessionRepository interface {
	Create(ctx context.Context, session *db_models.QuestionnaireSession) error
	GetByID(ctx context.Context, id string) (*db_models.QuestionnaireSession, error)
	FindInProgress(ctx context.Context, userProfileID, categoryID uuid.UUID) (*db_models.QuestionnaireSession, error)
	ListByUser(ctx context.Context, userProfileID uuid.UUID, page, pageSize int) ([]db_models.QuestionnaireSession, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdateStatusIf performs a compare-and-set on the status column.
	// It reports false when the session was no longer in `from`.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to db_models.SessionStatus) (bool, error)

	// CompleteTx atomically flips the session to COMPLETED, stamps
	// completed_at, bumps the profile's lifetime question counter and
	// appends the UserHistory record. Returns ErrInvalidSessionState
	// when the CAS loses against a concurrent transition.
	CompleteTx(ctx context.Context, session *db_models.QuestionnaireSession, answeredCount int, summary string) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *db_models.QuestionnaireSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*db_models.QuestionnaireSession, error) {
	var session db_models.QuestionnaireSession
	err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindInProgress(ctx context.Context, userProfileID, categoryID uuid.UUID) (*db_models.QuestionnaireSession, error) {
	var session db_models.QuestionnaireSession
	err := r.db.WithContext(ctx).
		Where("user_profile_id = ? AND category_id = ? AND status = ?",
			userProfileID, categoryID, db_models.SessionStatusInProgress).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) ListByUser(ctx context.Context, userProfileID uuid.UUID, page, pageSize int) ([]db_models.QuestionnaireSession, error) {
	var sessions []db_models.QuestionnaireSession
	offset := (page - 1) * pageSize

	err := r.db.WithContext(ctx).
		Where("user_profile_id = ?", userProfileID).
		Order("started_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&db_models.QuestionnaireSession{}, "id = ?", id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (r *sessionRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to db_models.SessionStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&db_models.QuestionnaireSession{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now().Unix(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *sessionRepository) CompleteTx(ctx context.Context, session *db_models.QuestionnaireSession, answeredCount int, summary string) (int64, error) {
	completedAt := time.Now().Unix()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&db_models.QuestionnaireSession{}).
			Where("id = ? AND status = ?", session.ID, db_models.SessionStatusInProgress).
			Updates(map[string]interface{}{
				"status":       db_models.SessionStatusCompleted,
				"completed_at": completedAt,
				"updated_at":   completedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return utils.ErrInvalidSessionState
		}

		if err := tx.Model(&db_models.UserProfile{}).
			Where("id = ?", session.UserProfileID).
			UpdateColumn("answered_question_count",
				gorm.Expr("answered_question_count + ?", answeredCount)).Error; err != nil {
			return err
		}

		history := &db_models.UserHistory{
			UserProfileID: session.UserProfileID,
			SessionID:     session.ID,
			CategoryID:    session.CategoryID,
			AnsweredCount: answeredCount,
			Summary:       summary,
		}
		return tx.Create(history).Error
	})
	if err != nil {
		return 0, err
	}
	return completedAt, nil
}
