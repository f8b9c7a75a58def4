package db_models

import (
	"github.com/pgvector/pgvector-go"
)

// ProductEmbedding backs free-text product search. One row per product,
// refreshed whenever the ingestion job updates the product.
type ProductEmbedding struct {
	BaseModel
	ProductID string          `gorm:"type:uuid;not null;uniqueIndex"`
	Embedding pgvector.Vector `gorm:"type:vector(1536)"`
}
