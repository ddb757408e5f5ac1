package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"

	"stylematch/internal/domain"
	applog "stylematch/internal/log"
	"stylematch/internal/services"
	"stylematch/internal/validate"
)

const viewWriteTimeout = 5 * time.Second

type ViewHandler struct {
	Views *services.ViewService
	// Done, when set, is called after each background write. Tests use it.
	Done func(err error)
}

// ensureViewer gives anonymous visitors a stable id so repeated views count once.
// The returned string is safe to keep after the handler returns.
func (h *ViewHandler) ensureViewer(c *fiber.Ctx) string {
	vid, ok := validate.ID(c.Cookies("vid"))
	if ok {
		return utils.CopyString(vid)
	}
	vid = uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     "vid",
		Value:    vid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
	})
	return vid
}

// Record handles POST /api/v1/garments/:id/views. The write happens after
// the response; a failed write is logged, never reported to the caller.
func (h *ViewHandler) Record(c *fiber.Ctx) error {
	gid, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, "view", &domain.ValidationError{Field: "id", Msg: "invalid garment id"})
	}
	// params alias the request buffer, which fiber reuses once we return
	gid = utils.CopyString(gid)
	if err := h.Views.Visible(c.UserContext(), gid); err != nil {
		return fail(c, "view", err)
	}
	vid := h.ensureViewer(c)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), viewWriteTimeout)
		defer cancel()
		err := h.Views.RecordView(ctx, gid, vid)
		if err != nil {
			applog.Error(nil, "view.record.fail", err, map[string]any{"garment": gid})
		}
		if h.Done != nil {
			h.Done(err)
		}
	}()

	c.Status(fiber.StatusAccepted)
	applog.Audit(c, "view.accept", map[string]any{"garment": gid})
	return c.JSON(fiber.Map{"status": "accepted"})
}
