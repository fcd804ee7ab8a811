package handlers

import (
	"bazaar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers order routes; all require auth.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	orderRoutes := router.Group("/orders", auth)
	orderRoutes.Get("/my_orders", h.HandleMyOrders)
	orderRoutes.Get("/", h.HandleListOrders)
	orderRoutes.Post("/", h.HandleCheckout)
	orderRoutes.Get("/:id", h.HandleGetOrder)
	orderRoutes.Patch("/:id/update_status", h.HandleUpdateStatus)
}

// CheckoutRequest is the checkout payload: the lines to order plus the
// shipping destination. Prices are not part of the contract.
type CheckoutRequest struct {
	Items           []services.CheckoutItem `json:"items" validate:"required,dive"`
	ShippingAddress string                  `json:"shipping_address" validate:"required"`
	ShippingCity    string                  `json:"shipping_city" validate:"required"`
	ShippingCountry string                  `json:"shipping_country" validate:"required"`
	ShippingZip     string                  `json:"shipping_zip"`
}

// HandleCheckout converts the requested lines into a persisted order.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	order, err := h.service.Checkout(callerID(c), req.Items, services.ShippingDetails{
		Address: req.ShippingAddress,
		City:    req.ShippingCity,
		Country: req.ShippingCountry,
		Zip:     req.ShippingZip,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleListOrders returns every order for admins, the caller's otherwise.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListOrders(callerID(c), callerIsAdmin(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleMyOrders returns the caller's own orders.
func (h *OrderHandler) HandleMyOrders(c *fiber.Ctx) error {
	orders, err := h.service.MyOrders(callerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrder returns one order, scoped to the caller unless admin.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(callerID(c), callerIsAdmin(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// UpdateStatusRequest carries the target status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleUpdateStatus moves an order along the allowed status graph.
func (h *OrderHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	order, err := h.service.UpdateStatus(callerID(c), callerIsAdmin(c), c.Params("id"), req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}
