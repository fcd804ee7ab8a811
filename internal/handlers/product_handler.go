package handlers

import (
	"bazaar/internal/models"
	"bazaar/internal/repositories"
	"bazaar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the catalog and reviews.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers product routes. Browsing is public; listing,
// editing and reviewing attach the auth middleware per route.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/my_products", auth, h.HandleMyProducts)
	productRoutes.Post("/", auth, h.HandleCreateProduct)
	productRoutes.Put("/:id", auth, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", auth, h.HandleDeleteProduct)
	productRoutes.Post("/:id/add_review", auth, h.HandleAddReview)

	productRoutes.Get("/:id", h.HandleGetProduct)
}

// HandleListProducts lists active products, optionally filtered by
// category, store or a name search.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	filter := repositories.ProductFilter{
		Category: c.Query("category"),
		StoreID:  c.Query("store"),
		Search:   c.Query("search"),
	}
	products, err := h.service.ListProducts(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// HandleGetProduct returns one product with its reviews.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// ProductRequest is the create/update payload for a product.
type ProductRequest struct {
	Name          string  `json:"name" validate:"required,min=2,max=200"`
	Description   string  `json:"description" validate:"omitempty,max=2000"`
	Price         float64 `json:"price" validate:"gte=0"`
	Category      string  `json:"category" validate:"required,oneof=fashion beauty crafts food electronics homedecor accessories other"`
	StockQuantity int     `json:"stock_quantity" validate:"gte=0"`
	IsActive      *bool   `json:"is_active"`
}

func (r ProductRequest) toModel() models.Product {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return models.Product{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		Category:      r.Category,
		StockQuantity: r.StockQuantity,
		IsActive:      active,
	}
}

// HandleCreateProduct lists a product under the caller's store.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	product := req.toModel()
	created, err := h.service.CreateProduct(callerID(c), &product)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateProduct updates a product of the caller's store.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	updates := req.toModel()
	product, err := h.service.UpdateProduct(callerID(c), c.Params("id"), &updates)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct removes a product of the caller's store.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(callerID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// HandleMyProducts lists every product of the caller's store.
func (h *ProductHandler) HandleMyProducts(c *fiber.Ctx) error {
	products, err := h.service.MyProducts(callerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// ReviewRequest is the add-review payload.
type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

// HandleAddReview stores the caller's review for a product.
func (h *ProductHandler) HandleAddReview(c *fiber.Ctx) error {
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	review, err := h.service.AddReview(callerID(c), c.Params("id"), req.Rating, req.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}
