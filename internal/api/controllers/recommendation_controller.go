package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masa-png/gadget-concierge-sub001/internal/services"
	"github.com/masa-png/gadget-concierge-sub001/pkg/utils"
)

type RecommendationController struct {
	recommendationService services.RecommendationServiceInterface
}

func NewRecommendationController(recommendationService services.RecommendationServiceInterface) *RecommendationController {
	return &RecommendationController{
		recommendationService: recommendationService,
	}
}

// Generate godoc
// @Summary Generate recommendations for a completed session
// @Description Runs once per session; a second call returns 409
// @Tags Recommendations
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /sessions/{id}/recommendations [post]
func (r *RecommendationController) Generate(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Session ID is required")
		return
	}

	recommendations, err := r.recommendationService.Generate(c.Request.Context(), c.GetString("user_id"), sessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, recommendations, "Recommendations generated successfully")
}

// ListBySession godoc
// @Summary List the recommendations stored for a session
// @Tags Recommendations
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /sessions/{id}/recommendations [get]
func (r *RecommendationController) ListBySession(c *gin.Context) {
	sessionID := c.Param("id")
	if sessionID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Session ID is required")
		return
	}

	recommendations, err := r.recommendationService.ListBySession(c.Request.Context(), c.GetString("user_id"), sessionID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, recommendations, "Recommendations fetched successfully")
}
