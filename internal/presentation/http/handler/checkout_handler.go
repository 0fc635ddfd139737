package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mbianou/chopchap-api/internal/application/service"
	"github.com/mbianou/chopchap-api/internal/presentation/http/dto/request"
	"github.com/mbianou/chopchap-api/internal/presentation/http/dto/response"
)

// CheckoutHandler handles order submissions
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Checkout submits an order. Works for both authenticated users and guests;
// a redirect_url in the response means the caller must navigate to the
// gateway and the order will be persisted through the gateway callback.
// @Summary Submit an order
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body request.CheckoutRequest true "Order submission"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Failure 502 {object} response.APIResponse
// @Failure 503 {object} response.APIResponse
// @Router /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Commande invalide. Verifiez les informations saisies.")
		return
	}

	userID := GetUserID(c)
	guestID := ""
	if userID == nil {
		guestID = GetGuestID(c)
	}

	result, err := h.checkoutService.Submit(c.Request.Context(), userID, guestID, &service.CheckoutInput{
		Lines:               req.Lines,
		Area:                req.Area,
		FullAddress:         req.FullAddress,
		PaymentMethod:       req.PaymentMethod,
		ContactName:         req.ContactName,
		ContactPhone:        req.ContactPhone,
		UsePoints:           req.UsePoints,
		DeliveryFeeOverride: req.DeliveryFeeOverride,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.RedirectURL != "" {
		response.OK(c, "Redirection vers la passerelle de paiement", result)
		return
	}

	response.Created(c, "Commande enregistree", result)
}
