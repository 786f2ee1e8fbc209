package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lawithanx/jcorp/internal/domain/entities"
	domainerrors "github.com/lawithanx/jcorp/internal/domain/errors"
	"github.com/lawithanx/jcorp/internal/interfaces/http/response"
)

type PaymentService interface {
	PaymentInfo() *entities.PaymentInfo
	VerifyPayment(ctx context.Context, input *entities.VerifyPaymentInput) (*entities.PaymentStatusResponse, error)
	ProcessFiatPayment(ctx context.Context, input *entities.FiatPaymentInput, clientIP string) (*entities.PaymentStatusResponse, error)
}

// PaymentHandler handles the payment endpoints
type PaymentHandler struct {
	paymentUsecase PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUsecase PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentUsecase: paymentUsecase}
}

// GetInfo returns the checkout parameters for the frontend
// GET /api/payment/info
func (h *PaymentHandler) GetInfo(c *gin.Context) {
	response.Success(c, http.StatusOK, h.paymentUsecase.PaymentInfo())
}

// VerifyPayment checks a transaction hash against the chain
// POST /api/payment/verify
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var input entities.VerifyPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Transaction hash is required"))
		return
	}

	result, err := h.paymentUsecase.VerifyPayment(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ProcessFiatPayment records a card payment placeholder
// POST /api/payment/fiat
func (h *PaymentHandler) ProcessFiatPayment(c *gin.Context) {
	var input entities.FiatPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid payment payload"))
		return
	}

	result, err := h.paymentUsecase.ProcessFiatPayment(c.Request.Context(), &input, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
