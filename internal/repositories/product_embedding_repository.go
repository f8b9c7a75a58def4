package repositories

import (
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/masa-png/gadget-concierge-sub001/internal/models/db_models"
)

type ProductEmbeddingRepository interface {
	Upsert(embedding db_models.ProductEmbedding) error
	ListByVector(vector pgvector.Vector, limit int) ([]db_models.ProductEmbedding, error)
}

type productEmbeddingRepository struct {
	db *gorm.DB
}

func NewProductEmbeddingRepository(db *gorm.DB) ProductEmbeddingRepository {
	return &productEmbeddingRepository{db: db}
}

func (r *productEmbeddingRepository) Upsert(embedding db_models.ProductEmbedding) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"embedding", "updated_at"}),
	}).Create(&embedding).Error
}

func (r *productEmbeddingRepository) ListByVector(vector pgvector.Vector, limit int) ([]db_models.ProductEmbedding, error) {
	var results []db_models.ProductEmbedding

	if limit <= 0 {
		limit = 15
	}

	query := `
        SELECT *, (1 - (embedding <=> $1)) as similarity
        FROM product_embeddings
        WHERE (1 - (embedding <=> $1)) > 0.7
        ORDER BY embedding <=> $1
        LIMIT $2
    `

	err := r.db.Raw(query, vector.String(), limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
