package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mbianou/chopchap-api/internal/application/service"
	"github.com/mbianou/chopchap-api/internal/presentation/http/dto/response"
	"github.com/mbianou/chopchap-api/pkg/pagination"
)

// LoyaltyHandler serves the points balance and ledger history
type LoyaltyHandler struct {
	loyaltyService *service.LoyaltyService
}

// NewLoyaltyHandler creates a new loyalty handler
func NewLoyaltyHandler(loyaltyService *service.LoyaltyService) *LoyaltyHandler {
	return &LoyaltyHandler{loyaltyService: loyaltyService}
}

// GetBalance returns the caller's loyalty account
// @Summary Get points balance
// @Tags loyalty
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /loyalty/balance [get]
func (h *LoyaltyHandler) GetBalance(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	account, err := h.loyaltyService.Balance(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Balance retrieved", account)
}

// ListTransactions returns the caller's ledger history
// @Summary List ledger transactions
// @Tags loyalty
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.APIResponse
// @Router /loyalty/transactions [get]
func (h *LoyaltyHandler) ListTransactions(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}

	result, err := h.loyaltyService.History(c.Request.Context(), *userID, &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transactions retrieved", result)
}
