package request_models

type StartSessionRequest struct {
	CategoryID string `json:"category_id" binding:"required,uuid"`
}

// SubmitAnswerRequest carries exactly one value shape depending on the
// question type: OptionIDs for choice questions, RangeValue for RANGE,
// TextValue for TEXT.
type SubmitAnswerRequest struct {
	QuestionID string   `json:"question_id" binding:"required,uuid"`
	OptionIDs  []string `json:"option_ids,omitempty"`
	RangeValue *int     `json:"range_value,omitempty"`
	TextValue  *string  `json:"text_value,omitempty"`
}

type BatchAnswersRequest struct {
	Answers []SubmitAnswerRequest `json:"answers" binding:"required,min=1,dive"`
}
