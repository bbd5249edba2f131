package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/hostel/internal/app/models/dto"
	"github.com/yigit/hostel/internal/app/services"
	"github.com/yigit/hostel/internal/middleware"
)

// PaymentController handles payment endpoints
type PaymentController struct {
	paymentService *services.PaymentService
	logger         zerolog.Logger
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(paymentService *services.PaymentService, logger zerolog.Logger) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		logger:         logger,
	}
}

// ListPayments returns the payment history
// @Summary Payment history
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.PaymentHistoryResponse}
// @Router /payments [get]
func (c *PaymentController) ListPayments(ctx *gin.Context) {
	entries, err := c.paymentService.ListPayments(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Returning empty payment history")
	}
	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.NewPaymentHistoryResponses(entries)))
}

// CreatePayment records a payment
// @Summary Record a payment
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePaymentRequest true "Payment"
// @Success 201 {object} dto.APIResponse{data=dto.IDResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /payments [post]
func (c *PaymentController) CreatePayment(ctx *gin.Context) {
	var req dto.CreatePaymentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	id, err := c.paymentService.AddPayment(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("Payment recorded successfully.", dto.IDResponse{ID: id}))
}
