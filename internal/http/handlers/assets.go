package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bsatnami/Ai-Masterji/internal/domain"
)

const maxUploadBytes = 32 << 20

// ProductsUpload accepts one or more product images as multipart "images"
// fields and appends them to the session in upload order.
func (a *App) ProductsUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return
	}
	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "at least one image is required")
		return
	}

	assets := make([]domain.Asset, 0, len(files))
	for _, header := range files {
		asset, err := readUpload(header)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		assets = append(assets, asset)
	}

	a.Session.AddProducts(r.Context(), assets)
	a.json(w, http.StatusCreated, a.Session.Status())
}

// ProductDelete removes the product asset at the given position.
func (a *App) ProductDelete(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "index must be an integer")
		return
	}
	if err := a.Session.RemoveProduct(index); err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, a.Session.Status())
}

// StyleUpload replaces the style-reference image and runs style analysis.
// The asset is stored even when analysis fails; the failure is surfaced so
// the client can notify the user and re-trigger by re-uploading.
func (a *App) StyleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return
	}
	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "image is required")
		return
	}
	asset, err := readUpload(files[0])
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	if err := a.Session.SetStyle(r.Context(), asset); err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, a.Session.Status())
}

// StyleDelete removes the style asset and its analysis.
func (a *App) StyleDelete(w http.ResponseWriter, r *http.Request) {
	a.Session.RemoveStyle()
	a.json(w, http.StatusOK, a.Session.Status())
}

// Status returns the current session snapshot.
func (a *App) Status(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Session.Status())
}

// Analysis returns the current style analysis, when ready.
func (a *App) Analysis(w http.ResponseWriter, r *http.Request) {
	analysis, ok := a.Session.Analysis()
	if !ok {
		status := a.Session.Status()
		a.json(w, http.StatusOK, map[string]any{"ready": false, "analyzing": status.Analyzing})
		return
	}
	a.json(w, http.StatusOK, map[string]any{"ready": true, "analysis": analysis})
}

func readUpload(header *multipart.FileHeader) (domain.Asset, error) {
	file, err := header.Open()
	if err != nil {
		return domain.Asset{}, errors.New("unreadable upload")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return domain.Asset{}, errors.New("unreadable upload")
	}
	mime := header.Header.Get("Content-Type")
	asset := domain.NewAsset(header.Filename, mime, data)
	if !asset.IsImage() {
		return domain.Asset{}, errors.New("only image uploads are supported, got " + strings.TrimSpace(mime))
	}
	return asset, nil
}
