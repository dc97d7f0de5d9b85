package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bsatnami/Ai-Masterji/internal/domain"
)

type settingsResponse struct {
	Settings domain.Settings `json:"settings"`
	Options  settingsOptions `json:"options"`
}

type settingsOptions struct {
	AspectRatios       []string `json:"aspect_ratios"`
	LightingStyles     []string `json:"lighting_styles"`
	CameraPerspectives []string `json:"camera_perspectives"`
}

func currentSettingsResponse(settings domain.Settings) settingsResponse {
	return settingsResponse{
		Settings: settings,
		Options: settingsOptions{
			AspectRatios:       domain.AspectRatios,
			LightingStyles:     domain.LightingStyles,
			CameraPerspectives: domain.CameraPerspectives,
		},
	}
}

// GetSettings returns the current generation settings and the accepted
// option values for each control.
func (a *App) GetSettings(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, currentSettingsResponse(a.Session.Settings()))
}

// UpdateSettings replaces the generation settings after validation.
func (a *App) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := a.Session.UpdateSettings(settings); err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, currentSettingsResponse(a.Session.Settings()))
}
