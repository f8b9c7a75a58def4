package response_models

type ProfileResponse struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	Email                 string `json:"email"`
	AnsweredQuestionCount int64  `json:"answered_question_count"`
	RecommendationCount   int64  `json:"recommendation_count"`
}
