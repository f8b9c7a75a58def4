package response_models

type OptionResponse struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Value       string `json:"value"`
}

type QuestionResponse struct {
	ID          string           `json:"id"`
	CategoryID  string           `json:"category_id"`
	Text        string           `json:"text"`
	Description string           `json:"description,omitempty"`
	Type        string           `json:"type"`
	IsRequired  bool             `json:"is_required"`
	Options     []OptionResponse `json:"options,omitempty"`
}
