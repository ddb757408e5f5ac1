package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/jmoiron/sqlx"

	"stylematch/internal/config"
	applog "stylematch/internal/log"
	"stylematch/internal/repos"
	"stylematch/internal/services"
)

type Deps struct {
	SuggestionHandler *SuggestionHandler
	ViewHandler       *ViewHandler
	FilterHandler     *FilterHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	garmentRepo := repos.NewGarmentRepo(db)
	partnerRepo := repos.NewPartnerRepo(db)
	occasionRepo := repos.NewOccasionRepo(db)
	viewRepo := repos.NewViewRepo(db)

	suggestSvc := services.NewSuggestionService(garmentRepo, partnerRepo, occasionRepo, cfg.MaxLimit,
		services.BreakerOptions{MaxFailures: cfg.BreakerMaxFailures, Timeout: cfg.BreakerTimeout})
	viewSvc := services.NewViewService(garmentRepo, partnerRepo, viewRepo)
	catalogSvc := services.NewCatalogService(garmentRepo)

	return &Deps{
		SuggestionHandler: &SuggestionHandler{Suggest: suggestSvc, DefaultLimit: cfg.DefaultLimit},
		ViewHandler:       &ViewHandler{Views: viewSvc},
		FilterHandler:     &FilterHandler{Catalog: catalogSvc},
	}
}

// Routes mounts the JSON API under r (normally the /api/v1 group).
func Routes(r fiber.Router, d *Deps) {
	viewLimiter := limiter.New(limiter.Config{
		Max:        30,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|views"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.views.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})

	r.Get("/suggestions", d.SuggestionHandler.List)
	r.Get("/occasions/:id/suggestions", d.SuggestionHandler.ForOccasion)
	r.Post("/garments/:id/views", viewLimiter, d.ViewHandler.Record)
	r.Get("/filters", d.FilterHandler.List)
}

// ErrorHandler is the app-level fallback: log the error, return a generic
// message without internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Something went wrong. Please try again."
	if fe, ok := err.(*fiber.Error); ok && fe.Code < 500 {
		code, msg = fe.Code, fe.Message
	}
	applog.Error(c, "server.error", err, map[string]any{"status": code})
	return c.Status(code).JSON(fiber.Map{"error": msg})
}
