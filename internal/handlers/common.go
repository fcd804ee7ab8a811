package handlers

import (
	"errors"
	"fmt"

	"bazaar/internal/apperrors"
	"bazaar/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// callerID returns the authenticated user id placed in Locals by the JWT
// middleware.
func callerID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

// callerIsAdmin reports whether the authenticated user carries the admin
// role.
func callerIsAdmin(c *fiber.Ctx) bool {
	role, _ := c.Locals("user_type").(string)
	return role == models.RoleAdmin
}

// respondError maps the service error taxonomy onto HTTP status codes:
// not-found 404, conflict 409, validation 400, anything else 500.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		status = fiber.StatusConflict
	case errors.Is(err, apperrors.ErrValidation):
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// respondValidationErrors renders validator failures as a field→message map.
func respondValidationErrors(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	messages := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		messages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "Validation failed",
		"fields": messages,
	})
}
