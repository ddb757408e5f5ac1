package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"stylematch/internal/domain"
	"stylematch/internal/services"
	"stylematch/internal/validate"
)

type SuggestionHandler struct {
	Suggest      *services.SuggestionService
	DefaultLimit int
}

// request reads the shared query params. Absent page/limit fall back to the
// defaults; malformed ones are a 400.
func (h *SuggestionHandler) request(c *fiber.Ctx) (services.SuggestionRequest, error) {
	page, ok := validate.Int(c.Query("page"), services.DefaultPage)
	if !ok {
		return services.SuggestionRequest{}, &domain.ValidationError{Field: "page", Msg: "page must be a whole number"}
	}
	def := h.DefaultLimit
	if def < 1 {
		def = services.DefaultLimit
	}
	limit, ok := validate.Int(c.Query("limit"), def)
	if !ok {
		return services.SuggestionRequest{}, &domain.ValidationError{Field: "limit", Msg: "limit must be a whole number"}
	}
	return services.SuggestionRequest{
		Page:       page,
		Limit:      limit,
		Search:     c.Query("search", c.Query("q")),
		Category:   c.Query("category"),
		Color:      c.Query("color"),
		SkinTone:   c.Query("skinTone"),
		Gender:     c.Query("gender"),
		Occasion:   c.Query("occasion"),
		OccasionID: strings.TrimSpace(c.Query("occasionId")),
	}, nil
}

// List handles GET /api/v1/suggestions.
func (h *SuggestionHandler) List(c *fiber.Ctx) error {
	req, err := h.request(c)
	if err != nil {
		return fail(c, "suggest", err)
	}
	resp, err := h.Suggest.Suggest(c.UserContext(), req)
	if err != nil {
		return fail(c, "suggest", err)
	}
	return c.JSON(resp)
}

// ForOccasion handles GET /api/v1/occasions/:id/suggestions.
func (h *SuggestionHandler) ForOccasion(c *fiber.Ctx) error {
	req, err := h.request(c)
	if err != nil {
		return fail(c, "suggest.occasion", err)
	}
	req.OccasionID = strings.TrimSpace(c.Params("id"))
	resp, err := h.Suggest.Suggest(c.UserContext(), req)
	if err != nil {
		return fail(c, "suggest.occasion", err)
	}
	return c.JSON(resp)
}
