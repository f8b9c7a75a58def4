package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/masa-png/gadget-concierge-sub001/internal/models/db_models"
	"github.com/masa-png/gadget-concierge-sub001/internal/models/request_models"
	"github.com/masa-png/gadget-concierge-sub001/internal/models/response_models"
	"github.com/masa-png/gadget-concierge-sub001/internal/repositories"
	"github.com/masa-png/gadget-concierge-sub001/pkg/utils"
)

const defaultSearchLimit = 15

type ProductServiceInterface interface {
	GetProduct(ctx context.Context, id string) (*response_models.ProductResponse, error)
	ListByCategory(ctx context.Context, categoryID string, page, pageSize int) ([]response_models.ProductResponse, error)
	SearchProducts(ctx context.Context, req request_models.ProductSearchRequest) ([]response_models.ProductResponse, error)
	SyncProduct(ctx context.Context, req request_models.ProductSyncRequest) (*response_models.ProductResponse, error)
}

type ProductService struct {
	productRepo   repositories.ProductRepository
	embeddingRepo repositories.ProductEmbeddingRepository
	categoryRepo  repositories.CategoryRepository
	aiClient      utils.GenerationClientInterface
	logger        *zap.Logger
}

func NewProductService(
	productRepo repositories.ProductRepository,
	embeddingRepo repositories.ProductEmbeddingRepository,
	categoryRepo repositories.CategoryRepository,
	aiClient utils.GenerationClientInterface,
	logger *zap.Logger,
) ProductServiceInterface {
	return &ProductService{
		productRepo:   productRepo,
		embeddingRepo: embeddingRepo,
		categoryRepo:  categoryRepo,
		aiClient:      aiClient,
		logger:        logger,
	}
}

func (p *ProductService) GetProduct(ctx context.Context, id string) (*response_models.ProductResponse, error) {
	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if product == nil {
		return nil, utils.ErrProductNotFound
	}
	resp := buildProductResponse(product)
	return &resp, nil
}

func (p *ProductService) ListByCategory(ctx context.Context, categoryID string, page, pageSize int) ([]response_models.ProductResponse, error) {
	if page < 1 || pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPage
	}

	category, err := p.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if category == nil {
		return nil, utils.ErrCategoryNotFound
	}

	products, err := p.productRepo.ListByCategory(ctx, categoryID, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return buildProductResponses(products), nil
}

// SearchProducts embeds the query text and walks the vector index. The
// embedding order is preserved in the response so closer matches come
// first.
func (p *ProductService) SearchProducts(ctx context.Context, req request_models.ProductSearchRequest) ([]response_models.ProductResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, utils.ErrInvalidInput
	}
	limit := req.Limit
	if limit <= 0 || limit > 50 {
		limit = defaultSearchLimit
	}

	vector, err := p.aiClient.GetEmbedding(ctx, query)
	if err != nil {
		p.logger.Warn("embedding generation failed", zap.Error(err))
		return nil, utils.ErrUnexpectedBehaviorOfAI
	}

	embeddings, err := p.embeddingRepo.ListByVector(vector, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if len(embeddings) == 0 {
		return []response_models.ProductResponse{}, nil
	}

	ids := make([]string, 0, len(embeddings))
	for _, embedding := range embeddings {
		ids = append(ids, embedding.ProductID)
	}

	products, err := p.productRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	productsByID := make(map[string]db_models.Product, len(products))
	for _, product := range products {
		productsByID[product.ID.String()] = product
	}

	out := make([]response_models.ProductResponse, 0, len(ids))
	for _, id := range ids {
		if product, ok := productsByID[id]; ok {
			out = append(out, buildProductResponse(&product))
		}
	}
	return out, nil
}

// SyncProduct is the ingestion write path. Embedding refresh is best
// effort: a failed embedding never fails the sync.
func (p *ProductService) SyncProduct(ctx context.Context, req request_models.ProductSyncRequest) (*response_models.ProductResponse, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	category, err := p.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if category == nil {
		return nil, utils.ErrCategoryNotFound
	}

	product := &db_models.Product{
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Rating:      req.Rating,
		Features:    req.Features,
		ExternalURL: req.ExternalURL,
		ImageURL:    req.ImageURL,
		ReviewCount: req.ReviewCount,
		ShopName:    req.ShopName,
		Tags:        req.Tags,
	}
	if err := p.productRepo.UpsertByExternalURL(ctx, product); err != nil {
		return nil, utils.ErrDatabaseError
	}

	p.refreshEmbedding(ctx, product)

	resp := buildProductResponse(product)
	return &resp, nil
}

func (p *ProductService) refreshEmbedding(ctx context.Context, product *db_models.Product) {
	text := fmt.Sprintf("%s. %s. %s", product.Name, product.Description, product.Features)
	vector, err := p.aiClient.GetEmbedding(ctx, text)
	if err != nil {
		p.logger.Warn("skipping embedding refresh",
			zap.String("product_id", product.ID.String()),
			zap.Error(err))
		return
	}

	err = p.embeddingRepo.Upsert(db_models.ProductEmbedding{
		ProductID: product.ID.String(),
		Embedding: vector,
	})
	if err != nil {
		p.logger.Warn("embedding upsert failed",
			zap.String("product_id", product.ID.String()),
			zap.Error(err))
	}
}

func buildProductResponses(products []db_models.Product) []response_models.ProductResponse {
	out := make([]response_models.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, buildProductResponse(&products[i]))
	}
	return out
}

func buildProductResponse(product *db_models.Product) response_models.ProductResponse {
	return response_models.ProductResponse{
		ID:          product.ID.String(),
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Rating:      product.Rating,
		Features:    product.Features,
		ExternalURL: product.ExternalURL,
		ImageURL:    product.ImageURL,
		ShopName:    product.ShopName,
		ReviewCount: product.ReviewCount,
		Tags:        product.Tags,
	}
}
