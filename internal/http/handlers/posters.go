package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bsatnami/Ai-Masterji/internal/domain"
	"github.com/bsatnami/Ai-Masterji/internal/storage"
)

type editRequest struct {
	Instruction string `json:"instruction"`
}

type posterResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	MIME      string            `json:"mime"`
	Prompt    string            `json:"prompt"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt string            `json:"created_at"`
	ImageURL  string            `json:"image_url"`
}

func toPosterResponse(record domain.PosterRecord) posterResponse {
	return posterResponse{
		ID:        record.ID,
		Name:      record.Name,
		MIME:      record.MIME,
		Prompt:    record.Prompt,
		Metadata:  record.Metadata,
		CreatedAt: record.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		ImageURL:  "/v1/posters/" + record.ID + "/image",
	}
}

// Generate invokes one manual generation against the current session state.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	record, err := a.Session.Generate(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusCreated, toPosterResponse(record))
}

// Edit applies an instruction to the identified poster and appends the
// result as a new revision.
func (a *App) Edit(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Instruction) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "instruction is required")
		return
	}

	record, err := a.Session.Edit(r.Context(), chi.URLParam(r, "id"), req.Instruction)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusCreated, toPosterResponse(record))
}

// Posters lists the revision library in creation order.
func (a *App) Posters(w http.ResponseWriter, r *http.Request) {
	records := a.Session.Posters()
	items := make([]posterResponse, 0, len(records))
	for _, record := range records {
		items = append(items, toPosterResponse(record))
	}
	activeID := ""
	if active, ok := a.Session.ActiveRecord(); ok {
		activeID = active.ID
	}
	a.json(w, http.StatusOK, map[string]any{"items": items, "active_id": activeID})
}

// Poster returns one record's metadata.
func (a *App) Poster(w http.ResponseWriter, r *http.Request) {
	record, ok := a.Session.Record(chi.URLParam(r, "id"))
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "poster not found")
		return
	}
	a.json(w, http.StatusOK, toPosterResponse(record))
}

// PosterImage serves the raw image bytes of a record.
func (a *App) PosterImage(w http.ResponseWriter, r *http.Request) {
	record, ok := a.Session.Record(chi.URLParam(r, "id"))
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "poster not found")
		return
	}
	mime := record.MIME
	if mime == "" {
		mime = "image/png"
	}
	w.Header().Set("Content-Type", mime)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(record.Image)
}

// Select makes the identified record the active one.
func (a *App) Select(w http.ResponseWriter, r *http.Request) {
	record, err := a.Session.SelectActive(chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, toPosterResponse(record))
}

// Export writes the record's image to the local export directory under a
// filename derived from its display name.
func (a *App) Export(w http.ResponseWriter, r *http.Request) {
	record, ok := a.Session.Record(chi.URLParam(r, "id"))
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "poster not found")
		return
	}
	filename := storage.ExportFilename(record.Name, record.MIME)
	key, err := a.Store.Write(r.Context(), filename, record.Image)
	if err != nil {
		a.Logger.Error().Err(err).Str("poster_id", record.ID).Msg("handlers: export failed")
		a.error(w, http.StatusInternalServerError, "internal", "export failed")
		return
	}
	a.json(w, http.StatusOK, map[string]string{
		"filename": key,
		"path":     a.Store.BasePath() + "/" + key,
	})
}

// Suggestions returns up to three creative prompt ideas for the current
// assets. Failures degrade to an empty list.
func (a *App) Suggestions(w http.ResponseWriter, r *http.Request) {
	suggestions := a.Session.Suggestions(r.Context())
	if suggestions == nil {
		suggestions = []string{}
	}
	a.json(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}
