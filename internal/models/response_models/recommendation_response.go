package response_models

type ProductResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating"`
	Features    string   `json:"features,omitempty"`
	ExternalURL string   `json:"external_url"`
	ImageURL    string   `json:"image_url,omitempty"`
	ShopName    string   `json:"shop_name,omitempty"`
	ReviewCount int64    `json:"review_count"`
	Tags        []string `json:"tags,omitempty"`
}

type RecommendationResponse struct {
	ID      string          `json:"id"`
	Rank    int             `json:"rank"`
	Score   float64         `json:"score"`
	Reason  string          `json:"reason"`
	Product ProductResponse `json:"product"`
}
