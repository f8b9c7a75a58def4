package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/masa-png/gadget-concierge-sub001/internal/models/db_models"
)

type ProfileRepository interface {
	InsertTx(profile *db_models.UserProfile, ctx context.Context) error
	FindByID(ctx context.Context, id string) (*db_models.UserProfile, error)
	FindByEmail(ctx context.Context, email string) (*db_models.UserProfile, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) InsertTx(profile *db_models.UserProfile, ctx context.Context) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) FindByID(ctx context.Context, id string) (*db_models.UserProfile, error) {
	var profile db_models.UserProfile
	err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindByEmail(ctx context.Context, email string) (*db_models.UserProfile, error) {
	var profile db_models.UserProfile
	err := r.db.WithContext(ctx).First(&profile, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}
