package handlers

import (
	"net/http"

	"github.com/bsatnami/Ai-Masterji/internal/middleware"
	"github.com/bsatnami/Ai-Masterji/internal/ui"
)

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}

// UIText serves the localized string table for the requesting client.
func (a *App) UIText(w http.ResponseWriter, r *http.Request) {
	locale := middleware.LocaleFromContext(r.Context())
	a.json(w, http.StatusOK, map[string]any{
		"locale": locale,
		"text":   ui.Text(locale),
	})
}
