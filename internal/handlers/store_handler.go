package handlers

import (
	"bazaar/internal/models"
	"bazaar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// StoreHandler handles HTTP requests for storefronts.
type StoreHandler struct {
	service  *services.StoreService
	validate *validator.Validate
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(service *services.StoreService) *StoreHandler {
	return &StoreHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers store routes. Browsing is public; opening and
// editing a store attach the auth middleware per route.
func (h *StoreHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	storeRoutes := router.Group("/stores")
	storeRoutes.Get("/", h.HandleListStores)
	storeRoutes.Get("/my_store", auth, h.HandleMyStore)
	storeRoutes.Post("/create_store", auth, h.HandleCreateStore)
	storeRoutes.Put("/:id", auth, h.HandleUpdateStore)

	// Registered after the action routes so "my_store" is not captured
	// as an id.
	storeRoutes.Get("/:id", h.HandleGetStore)
}

// HandleListStores lists every store.
func (h *StoreHandler) HandleListStores(c *fiber.Ctx) error {
	stores, err := h.service.ListStores()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stores)
}

// HandleGetStore returns one store by id.
func (h *StoreHandler) HandleGetStore(c *fiber.Ctx) error {
	store, err := h.service.GetStore(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(store)
}

// HandleMyStore returns the caller's store.
func (h *StoreHandler) HandleMyStore(c *fiber.Ctx) error {
	store, err := h.service.MyStore(callerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(store)
}

// HandleCreateStore opens a store for the caller.
func (h *StoreHandler) HandleCreateStore(c *fiber.Ctx) error {
	var store models.Store
	if err := c.BodyParser(&store); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	store.IsActive = true
	if err := h.validate.Struct(store); err != nil {
		return respondValidationErrors(c, err)
	}

	created, err := h.service.CreateStore(callerID(c), &store)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateStore applies updates to the caller's store.
func (h *StoreHandler) HandleUpdateStore(c *fiber.Ctx) error {
	var updates models.Store
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.validate.Struct(updates); err != nil {
		return respondValidationErrors(c, err)
	}

	store, err := h.service.UpdateStore(callerID(c), c.Params("id"), &updates)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(store)
}
