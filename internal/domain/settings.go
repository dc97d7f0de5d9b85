package domain

import (
	"fmt"
	"strings"
)

// Technical settings accepted by the generation pipeline. Each list is the
// closed set offered by the editor UI.
var (
	AspectRatios       = []string{"9:16", "1:1", "16:9", "3:4", "4:3"}
	LightingStyles     = []string{"Cinematic", "Studio", "Dramatic", "Natural", "Vibrant"}
	CameraPerspectives = []string{"Wide Angle", "Close Up", "Top Down", "Dynamic"}
)

// Settings holds the user-tunable generation parameters. Prompt is free text;
// it is also overwritten with the master prompt after a successful generation
// or when a library record is selected.
type Settings struct {
	AspectRatio       string `json:"aspect_ratio"`
	LightingStyle     string `json:"lighting_style"`
	CameraPerspective string `json:"camera_perspective"`
	Prompt            string `json:"prompt"`
}

// DefaultSettings returns the initial editor settings.
func DefaultSettings() Settings {
	return Settings{
		AspectRatio:       "9:16",
		LightingStyle:     "Cinematic",
		CameraPerspective: "Wide Angle",
		Prompt:            "",
	}
}

// Normalize canonicalizes casing and whitespace for the enumerated fields.
// Unknown values are left as-is so Validate can report them.
func (s *Settings) Normalize() {
	s.AspectRatio = canonical(AspectRatios, s.AspectRatio)
	s.LightingStyle = canonical(LightingStyles, s.LightingStyle)
	s.CameraPerspective = canonical(CameraPerspectives, s.CameraPerspective)
}

func canonical(allowed []string, value string) string {
	trimmed := strings.TrimSpace(value)
	for _, v := range allowed {
		if strings.EqualFold(trimmed, v) {
			return v
		}
	}
	return trimmed
}

// Validate checks that every enumerated field holds an allowed value.
func (s Settings) Validate() error {
	if !contains(AspectRatios, s.AspectRatio) {
		return fmt.Errorf("%w: unsupported aspect ratio %q", ErrPrecondition, s.AspectRatio)
	}
	if !contains(LightingStyles, s.LightingStyle) {
		return fmt.Errorf("%w: unsupported lighting style %q", ErrPrecondition, s.LightingStyle)
	}
	if !contains(CameraPerspectives, s.CameraPerspective) {
		return fmt.Errorf("%w: unsupported camera perspective %q", ErrPrecondition, s.CameraPerspective)
	}
	return nil
}

func contains(allowed []string, value string) bool {
	for _, v := range allowed {
		if strings.EqualFold(strings.TrimSpace(value), v) {
			return true
		}
	}
	return false
}
