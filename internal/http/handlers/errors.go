package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"stylematch/internal/domain"
	applog "stylematch/internal/log"
)

// fail maps domain errors onto JSON error responses. Anything it does not
// recognize is a 500 with a generic message.
func fail(c *fiber.Ctx, action string, err error) error {
	var (
		ve *domain.ValidationError
		nf *domain.NotFoundError
		ue *domain.UpstreamError
	)
	switch {
	case errors.As(err, &ve):
		applog.Security(c, "validation.fail", map[string]any{"field": ve.Field, "handler": action})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Msg, "field": ve.Field})
	case errors.As(err, &nf):
		applog.Info(c, action+".not_found", map[string]any{"resource": nf.Resource, "id": nf.ID})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": nf.Resource + " not found"})
	case errors.As(err, &ue):
		applog.Error(c, action+".upstream.fail", err, map[string]any{"op": ue.Op})
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "catalog temporarily unavailable, please retry"})
	default:
		applog.Error(c, action+".fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
	}
}
