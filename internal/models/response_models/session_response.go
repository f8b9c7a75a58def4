package response_models

type SessionResponse struct {
	ID          string `json:"id"`
	CategoryID  string `json:"category_id"`
	Status      string `json:"status"`
	StartedAt   int64  `json:"started_at"`
	CompletedAt *int64 `json:"completed_at,omitempty"`
}

type AnswerResponse struct {
	QuestionID   string   `json:"question_id"`
	QuestionText string   `json:"question_text"`
	QuestionType string   `json:"question_type"`
	OptionIDs    []string `json:"option_ids,omitempty"`
	OptionLabels []string `json:"option_labels,omitempty"`
	RangeValue   *int     `json:"range_value,omitempty"`
	TextValue    *string  `json:"text_value,omitempty"`
}

// SessionProgressResponse is a pure progress snapshot; fetching it
// never moves the session.
type SessionProgressResponse struct {
	SessionID             string            `json:"session_id"`
	NextQuestion          *QuestionResponse `json:"next_question,omitempty"`
	IsCompleted           bool              `json:"is_completed"`
	AnsweredCount         int               `json:"answered_count"`
	TotalQuestions        int               `json:"total_questions"`
	UnansweredRequiredIDs []string          `json:"unanswered_required_ids"`
}
