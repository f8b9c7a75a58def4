package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masa-png/gadget-concierge-sub001/internal/models/request_models"
	"github.com/masa-png/gadget-concierge-sub001/internal/services"
	"github.com/masa-png/gadget-concierge-sub001/pkg/utils"
)

type ProductController struct {
	productService services.ProductServiceInterface
}

func NewProductController(productService services.ProductServiceInterface) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// GetProduct godoc
// @Summary Get a product by ID
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /products/{id} [get]
func (p *ProductController) GetProduct(c *gin.Context) {
	productID := c.Param("id")
	if productID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Product ID is required")
		return
	}

	product, err := p.productService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, product, "Product fetched successfully")
}

// ListByCategory godoc
// @Summary List products in a category
// @Description Ordered by rating, highest first
// @Tags Products
// @Produce json
// @Param id path string true "Category ID"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size (1-100)"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /categories/{id}/products [get]
func (p *ProductController) ListByCategory(c *gin.Context) {
	categoryID := c.Param("id")
	if categoryID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Category ID is required")
		return
	}

	page, pageSize, ok := parsePaging(c)
	if !ok {
		return
	}

	products, err := p.productService.ListByCategory(c.Request.Context(), categoryID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, products, "Products fetched successfully")
}

// SearchProducts godoc
// @Summary Search products by free text
// @Description Vector similarity search over product embeddings
// @Tags Products
// @Accept json
// @Produce json
// @Param request body request_models.ProductSearchRequest true "Search payload"
// @Success 200 {object} utils.APIResponse
// @Router /products/search [post]
func (p *ProductController) SearchProducts(c *gin.Context) {
	var req request_models.ProductSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	products, err := p.productService.SearchProducts(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, products, "Products fetched successfully")
}

// SyncProduct godoc
// @Summary Upsert a product from the marketplace feed
// @Description Idempotent on external_url; refreshes the search embedding best effort
// @Tags Products
// @Accept json
// @Produce json
// @Param request body request_models.ProductSyncRequest true "Product payload"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /products/sync [post]
func (p *ProductController) SyncProduct(c *gin.Context) {
	var req request_models.ProductSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	product, err := p.productService.SyncProduct(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, product, "Product synced successfully")
}
