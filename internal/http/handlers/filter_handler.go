package handlers

import (
	"github.com/gofiber/fiber/v2"

	"stylematch/internal/services"
)

type FilterHandler struct {
	Catalog *services.CatalogService
}

// List handles GET /api/v1/filters.
func (h *FilterHandler) List(c *fiber.Ctx) error {
	f, err := h.Catalog.Filters(c.UserContext())
	if err != nil {
		return fail(c, "filters", err)
	}
	return c.JSON(f)
}
