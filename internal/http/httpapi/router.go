package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"server/internal/http/handlers"
	"server/internal/infra"
	"server/internal/middleware"
)

// NewRouter builds the HTTP surface: health plus the per-organization
// billing, restriction, slot and exemption endpoints.
func NewRouter(app *handlers.App, cfg *infra.Config, logger zerolog.Logger, lookup middleware.CountryLookup) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP, chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))
	r.Use(middleware.Locale(cfg.DefaultLocale, lookup))

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/orgs/{orgID}", func(r chi.Router) {
		r.Get("/billing", app.OrgBilling)
		r.Get("/restrictions", app.OrgRestrictions)
		r.Get("/slots", app.OrgSlots)
		r.Post("/invitations/check", app.CheckInvitation)

		r.Route("/exemptions", func(r chi.Router) {
			r.Get("/", app.ListExemptions)
			r.Post("/", app.CreateExemption)
		})
	})

	return r
}
