package handlers

import (
	"bazaar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for carts and wishlists.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers cart and wishlist routes; all require auth.
func (h *CartHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	cartRoutes := router.Group("/cart", auth)
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/", h.HandleAddToCart)
	cartRoutes.Patch("/:id", h.HandleUpdateCartItem)
	cartRoutes.Delete("/:id", h.HandleRemoveCartItem)

	wishlistRoutes := router.Group("/wishlist", auth)
	wishlistRoutes.Get("/", h.HandleGetWishlist)
	wishlistRoutes.Post("/", h.HandleAddToWishlist)
	wishlistRoutes.Delete("/:id", h.HandleRemoveWishlistItem)
}

// HandleGetCart lists the caller's cart with totals.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	summary, err := h.service.GetCart(callerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// AddToCartRequest is the add-to-cart payload. Quantity defaults to 1.
type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
}

// HandleAddToCart merges a product into the caller's cart.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	item, err := h.service.AddItem(callerID(c), req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":         item.ID,
		"product_id": item.ProductID,
		"product":    item.Product,
		"quantity":   item.Quantity,
		"total":      item.Total(),
		"added_at":   item.AddedAt,
	})
}

// UpdateCartItemRequest overwrites a line's quantity.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// HandleUpdateCartItem overwrites the quantity of one of the caller's lines.
func (h *CartHandler) HandleUpdateCartItem(c *fiber.Ctx) error {
	var req UpdateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	item, err := h.service.UpdateItem(callerID(c), c.Params("id"), req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// HandleRemoveCartItem deletes one of the caller's lines.
func (h *CartHandler) HandleRemoveCartItem(c *fiber.Ctx) error {
	if err := h.service.RemoveItem(callerID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item removed from cart"})
}

// HandleGetWishlist lists the caller's wishlist.
func (h *CartHandler) HandleGetWishlist(c *fiber.Ctx) error {
	entries, err := h.service.GetWishlist(callerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}

// AddToWishlistRequest is the add-to-wishlist payload.
type AddToWishlistRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// HandleAddToWishlist is get-or-create: 201 on a new entry, 200 when the
// product was already wished for.
func (h *CartHandler) HandleAddToWishlist(c *fiber.Ctx) error {
	var req AddToWishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	entry, created, err := h.service.AddToWishlist(callerID(c), req.ProductID)
	if err != nil {
		return respondError(c, err)
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(entry)
}

// HandleRemoveWishlistItem deletes one of the caller's wishlist entries.
func (h *CartHandler) HandleRemoveWishlistItem(c *fiber.Ctx) error {
	if err := h.service.RemoveFromWishlist(callerID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item removed from wishlist"})
}
