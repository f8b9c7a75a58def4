package services

import (
	"context"

	"github.com/masa-png/gadget-concierge-sub001/internal/models/db_models"
	"github.com/masa-png/gadget-concierge-sub001/internal/models/response_models"
	"github.com/masa-png/gadget-concierge-sub001/internal/repositories"
	"github.com/masa-png/gadget-concierge-sub001/pkg/utils"
)

type CatalogServiceInterface interface {
	ListCategories(ctx context.Context) ([]response_models.CategoryResponse, error)
	ListChildren(ctx context.Context, parentID string) ([]response_models.CategoryResponse, error)
	ListQuestions(ctx context.Context, categoryID string) ([]response_models.QuestionResponse, error)
}

type CatalogService struct {
	categoryRepo repositories.CategoryRepository
	questionRepo repositories.QuestionRepository
}

func NewCatalogService(categoryRepo repositories.CategoryRepository, questionRepo repositories.QuestionRepository) CatalogServiceInterface {
	return &CatalogService{
		categoryRepo: categoryRepo,
		questionRepo: questionRepo,
	}
}

func (c *CatalogService) ListCategories(ctx context.Context) ([]response_models.CategoryResponse, error) {
	categories, err := c.categoryRepo.ListRoots(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return buildCategoryResponses(categories), nil
}

func (c *CatalogService) ListChildren(ctx context.Context, parentID string) ([]response_models.CategoryResponse, error) {
	parent, err := c.categoryRepo.GetByID(ctx, parentID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if parent == nil {
		return nil, utils.ErrCategoryNotFound
	}

	children, err := c.categoryRepo.ListChildren(ctx, parentID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return buildCategoryResponses(children), nil
}

func (c *CatalogService) ListQuestions(ctx context.Context, categoryID string) ([]response_models.QuestionResponse, error) {
	category, err := c.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if category == nil {
		return nil, utils.ErrCategoryNotFound
	}

	questions, err := c.questionRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.QuestionResponse, 0, len(questions))
	for i := range questions {
		out = append(out, *buildQuestionResponse(&questions[i]))
	}
	return out, nil
}

func buildCategoryResponses(categories []db_models.Category) []response_models.CategoryResponse {
	out := make([]response_models.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		resp := response_models.CategoryResponse{
			ID:          category.ID.String(),
			Name:        category.Name,
			Description: category.Description,
		}
		if category.ParentID != nil {
			parentID := category.ParentID.String()
			resp.ParentID = &parentID
		}
		out = append(out, resp)
	}
	return out
}
