package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/masa-png/gadget-concierge-sub001/internal/models/db_models"
	"github.com/masa-png/gadget-concierge-sub001/internal/models/request_models"
	"github.com/masa-png/gadget-concierge-sub001/pkg/utils"
)

type stubEmbeddingRepo struct {
	embeddings map[string]db_models.ProductEmbedding
	// order returned by ListByVector, closest first
	order []string
}

func newStubEmbeddingRepo() *stubEmbeddingRepo {
	return &stubEmbeddingRepo{embeddings: map[string]db_models.ProductEmbedding{}}
}

func (s *stubEmbeddingRepo) Upsert(embedding db_models.ProductEmbedding) error {
	s.embeddings[embedding.ProductID] = embedding
	return nil
}

func (s *stubEmbeddingRepo) ListByVector(_ pgvector.Vector, limit int) ([]db_models.ProductEmbedding, error) {
	var out []db_models.ProductEmbedding
	for _, productID := range s.order {
		if len(out) == limit {
			break
		}
		out = append(out, db_models.ProductEmbedding{ProductID: productID})
	}
	return out, nil
}

func newProductTestService(t *testing.T) (ProductServiceInterface, *stubProductRepo, *stubEmbeddingRepo, *db_models.Category) {
	t.Helper()

	categories := newStubCategoryRepo()
	category := &db_models.Category{}
	category.ID = uuid.New()
	category.Name = "Tablets"
	categories.add(category)

	products := &stubProductRepo{}
	embeddings := newStubEmbeddingRepo()
	service := NewProductService(products, embeddings, categories, &stubAgent{}, zap.NewNop())
	return service, products, embeddings, category
}

func TestSyncProductIsIdempotentOnExternalURL(t *testing.T) {
	service, products, embeddings, category := newProductTestService(t)
	ctx := context.Background()

	req := request_models.ProductSyncRequest{
		CategoryID:  category.ID.String(),
		Name:        "Tab One",
		Price:       299,
		Rating:      4.2,
		ExternalURL: "https://shop.example/tab-one",
		Tags:        []string{"budget"},
	}

	first, err := service.SyncProduct(ctx, req)
	require.NoError(t, err)

	req.Rating = 4.6
	second, err := service.SyncProduct(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "re-sync must update in place, not duplicate")
	assert.Len(t, products.products, 1)
	assert.Equal(t, 4.6, products.products[0].Rating)
	assert.Contains(t, embeddings.embeddings, first.ID, "sync refreshes the search embedding")
}

func TestSyncProductUnknownCategory(t *testing.T) {
	service, _, _, _ := newProductTestService(t)

	_, err := service.SyncProduct(context.Background(), request_models.ProductSyncRequest{
		CategoryID:  uuid.NewString(),
		Name:        "Orphan",
		Price:       10,
		ExternalURL: "https://shop.example/orphan",
	})
	assert.ErrorIs(t, err, utils.ErrCategoryNotFound)
}

func TestSearchProductsPreservesSimilarityOrder(t *testing.T) {
	service, products, embeddings, category := newProductTestService(t)
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"Tab A", "Tab B", "Tab C"} {
		product := db_models.Product{
			CategoryID:  category.ID,
			Name:        name,
			ExternalURL: "https://shop.example/" + name,
		}
		product.ID = uuid.New()
		products.products = append(products.products, product)
		ids = append(ids, product.ID.String())
	}
	// Closest match last in insertion order.
	embeddings.order = []string{ids[2], ids[0]}

	out, err := service.SearchProducts(ctx, request_models.ProductSearchRequest{Query: "light tablet"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Tab C", out[0].Name)
	assert.Equal(t, "Tab A", out[1].Name)
}

func TestSearchProductsRejectsBlankQuery(t *testing.T) {
	service, _, _, _ := newProductTestService(t)

	_, err := service.SearchProducts(context.Background(), request_models.ProductSearchRequest{Query: "   "})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestGetProductNotFound(t *testing.T) {
	service, _, _, _ := newProductTestService(t)

	_, err := service.GetProduct(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestListByCategoryValidatesPaging(t *testing.T) {
	service, _, _, category := newProductTestService(t)

	_, err := service.ListByCategory(context.Background(), category.ID.String(), 0, 10)
	assert.ErrorIs(t, err, utils.ErrInvalidPage)
}
