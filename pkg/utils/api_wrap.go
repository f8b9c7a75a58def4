package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

func respondErrorWithData(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

// HandleServiceError maps every service error kind onto a distinct
// status and user-facing message.
func HandleServiceError(c *gin.Context, err error) {
	var incomplete *IncompleteRequiredAnswersError

	switch {
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "An account with this email already exists")
	case errors.Is(err, ErrCategoryNotFound):
		RespondError(c, http.StatusNotFound, "Category not found")
	case errors.Is(err, ErrQuestionNotFound):
		RespondError(c, http.StatusNotFound, "Question not found")
	case errors.Is(err, ErrSessionNotFound):
		RespondError(c, http.StatusNotFound, "Session not found")
	case errors.Is(err, ErrProfileNotFound):
		RespondError(c, http.StatusNotFound, "Profile not found")
	case errors.Is(err, ErrProductNotFound):
		RespondError(c, http.StatusNotFound, "Product not found")
	case errors.As(err, &incomplete):
		respondErrorWithData(c, http.StatusUnprocessableEntity,
			"Please answer all required questions before completing",
			gin.H{"missing_question_ids": incomplete.MissingQuestionIDs})
	case errors.Is(err, ErrInvalidAnswer), errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrCategoryMismatch):
		RespondError(c, http.StatusBadRequest, "Question does not belong to this session's category")
	case errors.Is(err, ErrInvalidSessionState):
		RespondError(c, http.StatusConflict, "This action is not allowed in the session's current state")
	case errors.Is(err, ErrAlreadyGenerated):
		RespondError(c, http.StatusConflict, "Recommendations were already generated for this session")
	case errors.Is(err, ErrNoCandidateProducts):
		RespondError(c, http.StatusUnprocessableEntity, "No candidate products are available for this category yet")
	case errors.Is(err, ErrNoAnswers):
		RespondError(c, http.StatusUnprocessableEntity, "The session has no answers to generate recommendations from")
	case errors.Is(err, ErrUnexpectedBehaviorOfAI):
		log.Printf("AI backend error: %v", err)
		RespondError(c, http.StatusBadGateway, "Search is temporarily unavailable, please try again later")
	case errors.Is(err, ErrRateLimited):
		RespondError(c, http.StatusTooManyRequests, "Too many requests, please try again later")
	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Something went wrong, please try again later")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Something went wrong, please try again later")
	}
}
