package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/masa-png/gadget-concierge-sub001/internal/models/db_models"
	"github.com/masa-png/gadget-concierge-sub001/internal/models/request_models"
	"github.com/masa-png/gadget-concierge-sub001/internal/models/response_models"
	"github.com/masa-png/gadget-concierge-sub001/internal/repositories"
	"github.com/masa-png/gadget-concierge-sub001/pkg/utils"
)

type AccountServiceInterface interface {
	CreateAccount(ctx context.Context, req request_models.SignUpRequest) (*response_models.ProfileResponse, error)
	Login(ctx context.Context, req request_models.LoginRequest) (string, error)
	GetProfile(ctx context.Context, userID string) (*response_models.ProfileResponse, error)
}

type AccountService struct {
	profileRepo repositories.ProfileRepository
	logger      *zap.Logger
}

func NewAccountService(profileRepo repositories.ProfileRepository, logger *zap.Logger) AccountServiceInterface {
	return &AccountService{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

func (a *AccountService) CreateAccount(ctx context.Context, req request_models.SignUpRequest) (*response_models.ProfileResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := a.profileRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	profile := &db_models.UserProfile{
		Name:         req.DisplayName,
		Email:        email,
		PasswordHash: hash,
	}
	if err := a.profileRepo.InsertTx(profile, ctx); err != nil {
		// The unique index backstops the pre-check under concurrent
		// sign-ups with the same email.
		a.logger.Warn("profile insert failed", zap.String("email", email), zap.Error(err))
		return nil, utils.ErrEmailAlreadyExists
	}

	return buildProfileResponse(profile), nil
}

func (a *AccountService) Login(ctx context.Context, req request_models.LoginRequest) (string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	profile, err := a.profileRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if profile == nil {
		return "", utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(profile.PasswordHash, req.Password); err != nil {
		return "", utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(profile.ID)
	if err != nil {
		return "", utils.ErrUnauthorized
	}
	return token, nil
}

func (a *AccountService) GetProfile(ctx context.Context, userID string) (*response_models.ProfileResponse, error) {
	profile, err := a.profileRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if profile == nil {
		return nil, utils.ErrProfileNotFound
	}
	return buildProfileResponse(profile), nil
}

func buildProfileResponse(profile *db_models.UserProfile) *response_models.ProfileResponse {
	return &response_models.ProfileResponse{
		ID:                    profile.ID.String(),
		Name:                  profile.Name,
		Email:                 profile.Email,
		AnsweredQuestionCount: profile.AnsweredQuestionCount,
		RecommendationCount:   profile.RecommendationCount,
	}
}
