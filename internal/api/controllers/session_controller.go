package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/masa-png/gadget-concierge-sub001/internal/models/request_models"
	"github.com/masa-png/gadget-concierge-sub001/internal/services"
	"github.com/masa-png/gadget-concierge-sub001/pkg/utils"
)

type SessionController struct {
	sessionService services.SessionServiceInterface
}

func NewSessionController(sessionService services.SessionServiceInterface) *SessionController {
	return &SessionController{
		sessionService: sessionService,
	}
}

// StartSession godoc
// @Summary Start a questionnaire session
// @Description Creates a session for the category, or returns the caller's existing IN_PROGRESS one
// @Tags Sessions
// @Accept json
// @Produce json
// @Param request body request_models.StartSessionRequest true "Session start payload"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /sessions [post]
func (s *SessionController) StartSession(c *gin.Context) {
	var req request_models.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	session, err := s.sessionService.StartSession(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Session started successfully")
}

// GetSession godoc
// @Summary Get a session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /sessions/{id} [get]
func (s *SessionController) GetSession(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Session ID is required")
		return
	}

	session, err := s.sessionService.GetSession(c.Request.Context(), c.GetString("user_id"), sessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Session fetched successfully")
}

// ListSessions godoc
// @Summary List the caller's sessions
// @Tags Sessions
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size (1-100)"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /sessions [get]
func (s *SessionController) ListSessions(c *gin.Context) {
	page, pageSize, ok := parsePaging(c)
	if !ok {
		return
	}

	sessions, err := s.sessionService.ListSessions(c.Request.Context(), c.GetString("user_id"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, sessions, "Sessions fetched successfully")
}

// DeleteSession godoc
// @Summary Delete a session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /sessions/{id} [delete]
func (s *SessionController) DeleteSession(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Session ID is required")
		return
	}

	if err := s.sessionService.DeleteSession(c.Request.Context(), c.GetString("user_id"), sessionID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Session deleted successfully")
}

// SubmitAnswer godoc
// @Summary Submit or replace one answer
// @Description Re-answering a question overwrites the previous answer
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request_models.SubmitAnswerRequest true "Answer payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /sessions/{id}/answers [post]
func (s *SessionController) SubmitAnswer(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Session ID is required")
		return
	}

	var req request_models.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	answer, err := s.sessionService.SubmitAnswer(c.Request.Context(), c.GetString("user_id"), sessionID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, answer, "Answer saved successfully")
}

// SubmitAnswerBatch godoc
// @Summary Submit several answers at once
// @Description All answers are validated first; the batch is written all-or-nothing
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request_models.BatchAnswersRequest true "Batch payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /sessions/{id}/answers/batch [post]
func (s *SessionController) SubmitAnswerBatch(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Session ID is required")
		return
	}

	var req request_models.BatchAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	answers, err := s.sessionService.SubmitAnswerBatch(c.Request.Context(), c.GetString("user_id"), sessionID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, answers, "Answers saved successfully")
}

// ListAnswers godoc
// @Summary List the answers recorded for a session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /sessions/{id}/answers [get]
func (s *SessionController) ListAnswers(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Session ID is required")
		return
	}

	answers, err := s.sessionService.ListAnswers(c.Request.Context(), c.GetString("user_id"), sessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, answers, "Answers fetched successfully")
}

// GetProgress godoc
// @Summary Get session progress
// @Description Returns the next unanswered question and outstanding required questions
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /sessions/{id}/progress [get]
func (s *SessionController) GetProgress(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Session ID is required")
		return
	}

	progress, err := s.sessionService.Advance(c.Request.Context(), c.GetString("user_id"), sessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, progress, "Progress fetched successfully")
}

// CompleteSession godoc
// @Summary Complete a session
// @Description Fails with the missing question IDs when required answers are outstanding
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Security BearerAuth
// @Router /sessions/{id}/complete [post]
func (s *SessionController) CompleteSession(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Session ID is required")
		return
	}

	session, err := s.sessionService.CompleteSession(c.Request.Context(), c.GetString("user_id"), sessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Session completed successfully")
}

// AbandonSession godoc
// @Summary Abandon a session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /sessions/{id}/abandon [post]
func (s *SessionController) AbandonSession(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Session ID is required")
		return
	}

	session, err := s.sessionService.AbandonSession(c.Request.Context(), c.GetString("user_id"), sessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Session abandoned")
}

// ResumeSession godoc
// @Summary Resume an abandoned session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /sessions/{id}/resume [post]
func (s *SessionController) ResumeSession(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Session ID is required")
		return
	}

	session, err := s.sessionService.ResumeSession(c.Request.Context(), c.GetString("user_id"), sessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Session resumed")
}

func parsePaging(c *gin.Context) (int, int, bool) {
	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "10")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return 0, 0, false
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return 0, 0, false
	}
	return page, pageSize, true
}
