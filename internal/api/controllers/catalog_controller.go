package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masa-png/gadget-concierge-sub001/internal/services"
	"github.com/masa-png/gadget-concierge-sub001/pkg/utils"
)

type CatalogController struct {
	catalogService services.CatalogServiceInterface
}

func NewCatalogController(catalogService services.CatalogServiceInterface) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// ListCategories godoc
// @Summary List root categories
// @Tags Catalog
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /categories [get]
func (cc *CatalogController) ListCategories(c *gin.Context) {
	categories, err := cc.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, categories, "Categories fetched successfully")
}

// ListChildren godoc
// @Summary List child categories of a parent
// @Tags Catalog
// @Produce json
// @Param id path string true "Parent category ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /categories/{id}/children [get]
func (cc *CatalogController) ListChildren(c *gin.Context) {
	parentID := c.Param("id")
	if parentID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Category ID is required")
		return
	}

	children, err := cc.catalogService.ListChildren(c.Request.Context(), parentID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, children, "Child categories fetched successfully")
}

// ListQuestions godoc
// @Summary List questions for a category
// @Description Questions come back in presentation order with options preloaded
// @Tags Catalog
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /categories/{id}/questions [get]
func (cc *CatalogController) ListQuestions(c *gin.Context) {
	categoryID := c.Param("id")
	if categoryID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Category ID is required")
		return
	}

	questions, err := cc.catalogService.ListQuestions(c.Request.Context(), categoryID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, questions, "Questions fetched successfully")
}
