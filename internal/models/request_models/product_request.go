package request_models

type ProductSearchRequest struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit,omitempty"`
}

// ProductSyncRequest is the ingestion job's write payload, keyed by
// ExternalURL for idempotent upserts.
type ProductSyncRequest struct {
	CategoryID  string   `json:"category_id" binding:"required,uuid"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required"`
	Rating      float64  `json:"rating"`
	Features    string   `json:"features"`
	ExternalURL string   `json:"external_url" binding:"required,url"`
	ImageURL    string   `json:"image_url"`
	ReviewCount int64    `json:"review_count"`
	ShopName    string   `json:"shop_name"`
	Tags        []string `json:"tags"`
}
