package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bsatnami/Ai-Masterji/internal/domain"
	"github.com/bsatnami/Ai-Masterji/internal/infra"
	"github.com/bsatnami/Ai-Masterji/internal/storage"
	"github.com/bsatnami/Ai-Masterji/internal/studio"
)

// App is the handler container: one studio session, the export store, and a
// logger. There is no multi-user routing; the whole service is one session.
type App struct {
	Session *studio.Session
	Store   *storage.FileStore
	Logger  infra.Logger
}

func NewApp(session *studio.Session, store *storage.FileStore, logger infra.Logger) *App {
	return &App{Session: session, Store: store, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, message string) {
	a.json(w, code, map[string]any{
		"error": map[string]string{"code": kind, "message": message},
	})
}

// fail maps domain errors onto HTTP responses. External-capability failures
// surface as 502 so the client can tell them apart from its own bad input.
func (a *App) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrPrecondition):
		a.error(w, http.StatusUnprocessableEntity, "precondition_failed", err.Error())
	case errors.Is(err, domain.ErrBusy):
		a.error(w, http.StatusConflict, "busy", "another generation or edit is in flight")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrAnalysis):
		a.error(w, http.StatusBadGateway, "analysis_failed", err.Error())
	case errors.Is(err, domain.ErrGeneration):
		a.error(w, http.StatusBadGateway, "generation_failed", err.Error())
	case errors.Is(err, domain.ErrEdit):
		a.error(w, http.StatusBadGateway, "edit_failed", err.Error())
	default:
		a.Logger.Error().Err(err).Msg("handlers: unexpected error")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
