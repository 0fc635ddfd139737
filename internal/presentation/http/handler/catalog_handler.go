package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mbianou/chopchap-api/internal/application/service"
	"github.com/mbianou/chopchap-api/internal/presentation/http/dto/response"
)

// CatalogHandler serves the pricing reference data
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListDeliveryAreas returns the delivery zones and their fees
// @Summary List delivery areas
// @Tags catalog
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /catalog/delivery-areas [get]
func (h *CatalogHandler) ListDeliveryAreas(c *gin.Context) {
	areas, err := h.catalogService.DeliveryAreas(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Delivery areas retrieved", areas)
}

// ListAddOnGroups returns the add-on catalog
// @Summary List add-on groups
// @Tags catalog
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /catalog/add-ons [get]
func (h *CatalogHandler) ListAddOnGroups(c *gin.Context) {
	groups, err := h.catalogService.AddOnGroups(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Add-on groups retrieved", groups)
}
