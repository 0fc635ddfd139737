package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mbianou/chopchap-api/internal/application/service"
	"github.com/mbianou/chopchap-api/internal/domain/enum"
	"github.com/mbianou/chopchap-api/internal/domain/repository"
	"github.com/mbianou/chopchap-api/internal/presentation/http/dto/response"
	"github.com/mbianou/chopchap-api/pkg/pagination"
	"github.com/mbianou/chopchap-api/pkg/utils"
)

// OrderHandler handles order query HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GetOrder returns one of the caller's orders with its items
// @Summary Get an order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	orderID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), *userID, orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved", order)
}

// ListOrders returns the caller's order history
// @Summary List orders
// @Tags orders
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.APIResponse
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var paginationParams pagination.PaginationParams
	if err := c.ShouldBindQuery(&paginationParams); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}

	params := &repository.OrderFilterParams{Pagination: &paginationParams}

	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.OrderStatus(statusStr)
		if !status.IsValid() {
			response.BadRequest(c, "Invalid order status")
			return
		}
		params.Status = &status
	}

	if startStr := c.Query("start_date"); startStr != "" {
		start, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
			return
		}
		params.StartDate = &start
	}
	if endStr := c.Query("end_date"); endStr != "" {
		end, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			response.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
			return
		}
		params.EndDate = &end
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved", result)
}
