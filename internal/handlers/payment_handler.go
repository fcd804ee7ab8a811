package handlers

import (
	"bazaar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles HTTP requests for payments.
type PaymentHandler struct {
	service  *services.PaymentService
	validate *validator.Validate
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers payment routes; all require auth.
func (h *PaymentHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	paymentRoutes := router.Group("/payments", auth)
	paymentRoutes.Post("/initialize", h.HandleInitialize)
	paymentRoutes.Get("/:id/verify", h.HandleVerify)
}

// InitializePaymentRequest names the order and the chosen method.
type InitializePaymentRequest struct {
	OrderID string `json:"order_id" validate:"required"`
	Method  string `json:"method" validate:"required"`
}

// HandleInitialize creates the payment for one of the caller's orders.
func (h *PaymentHandler) HandleInitialize(c *fiber.Ctx) error {
	var req InitializePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	payment, err := h.service.Initialize(callerID(c), req.OrderID, req.Method)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

// HandleVerify re-checks a payment's status against the gateway.
func (h *PaymentHandler) HandleVerify(c *fiber.Ctx) error {
	payment, err := h.service.Verify(callerID(c), callerIsAdmin(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(payment)
}
