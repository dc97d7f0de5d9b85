package httpapi

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/bsatnami/Ai-Masterji/internal/http/handlers"
	"github.com/bsatnami/Ai-Masterji/internal/infra"
	"github.com/bsatnami/Ai-Masterji/internal/middleware"
)

func NewRouter(app *handlers.App, cfg *infra.Config, logger infra.Logger) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.RateLimit(cfg.RateLimitPerMin))
	r.Use(middleware.I18N(cfg.DefaultLocale))

	// Health
	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/ui-text", app.UIText)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/status", app.Status)

		r.Route("/assets", func(r chi.Router) {
			r.Post("/products", app.ProductsUpload)
			r.Delete("/products/{index}", app.ProductDelete)
			r.Put("/style", app.StyleUpload)
			r.Delete("/style", app.StyleDelete)
		})

		r.Get("/analysis", app.Analysis)

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", app.GetSettings)
			r.Put("/", app.UpdateSettings)
		})

		r.Route("/posters", func(r chi.Router) {
			r.Get("/", app.Posters)
			r.Post("/generate", app.Generate)
			r.Get("/{id}", app.Poster)
			r.Get("/{id}/image", app.PosterImage)
			r.Post("/{id}/edit", app.Edit)
			r.Post("/{id}/select", app.Select)
			r.Post("/{id}/export", app.Export)
		})

		r.Get("/suggestions", app.Suggestions)
	})

	return r
}
