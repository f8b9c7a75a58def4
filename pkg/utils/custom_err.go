package utils

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")

	ErrCategoryNotFound = errors.New("category not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrProductNotFound  = errors.New("product not found")

	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidAnswer       = errors.New("answer failed validation")
	ErrInvalidSessionState = errors.New("operation not allowed in current session state")
	ErrCategoryMismatch    = errors.New("question does not belong to the session category")

	ErrAlreadyGenerated    = errors.New("recommendations already generated for this session")
	ErrNoCandidateProducts = errors.New("no candidate products for category")
	ErrNoAnswers           = errors.New("session has no answers")

	// ErrUnexpectedBehaviorOfAI routes the recommendation pipeline onto
	// its fallback path; product search surfaces it as a 502.
	ErrUnexpectedBehaviorOfAI = errors.New("ai response unusable")

	ErrRateLimited   = errors.New("rate limit exceeded")
	ErrInvalidPage   = errors.New("invalid page parameter")
	ErrDatabaseError = errors.New("database error")
)

// ErrIncompleteRequiredAnswers is the match target for
// IncompleteRequiredAnswersError via errors.Is.
var ErrIncompleteRequiredAnswers = errors.New("required questions not answered")

// IncompleteRequiredAnswersError carries the questions still missing a
// valid answer so the caller can correct input.
type IncompleteRequiredAnswersError struct {
	MissingQuestionIDs []uuid.UUID
}

func (e *IncompleteRequiredAnswersError) Error() string {
	return fmt.Sprintf("%d required questions not answered", len(e.MissingQuestionIDs))
}

func (e *IncompleteRequiredAnswersError) Unwrap() error {
	return ErrIncompleteRequiredAnswers
}
