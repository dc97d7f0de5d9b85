package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestDeriveName(t *testing.T) {
	cases := []struct {
		prompt string
		want   string
	}{
		{"Short prompt", "Short prompt"},
		{"", "New Poster"},
		{strings.Repeat("a", 40), strings.Repeat("a", 30)},
		{strings.Repeat("é", 40), strings.Repeat("é", 30)},
	}
	for _, tc := range cases {
		if got := DeriveName(tc.prompt); got != tc.want {
			t.Fatalf("DeriveName(%q) = %q, want %q", tc.prompt, got, tc.want)
		}
	}
}

func TestNewPosterRecordIDPrefix(t *testing.T) {
	record := NewPosterRecord("image/png", []byte{1}, "A prompt", nil)
	if !strings.HasPrefix(record.ID, "poster-") {
		t.Fatalf("id = %q, want poster- prefix", record.ID)
	}
	if record.Name != "A prompt" {
		t.Fatalf("name = %q, want derived from prompt", record.Name)
	}
}

func TestSettingsNormalizeAndValidate(t *testing.T) {
	s := Settings{AspectRatio: " 16:9 ", LightingStyle: "studio", CameraPerspective: "close up"}
	s.Normalize()
	if s.LightingStyle != "Studio" || s.CameraPerspective != "Close Up" || s.AspectRatio != "16:9" {
		t.Fatalf("normalized settings = %+v", s)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	s.AspectRatio = "2:1"
	err := s.Validate()
	if err == nil {
		t.Fatalf("expected validation error for aspect ratio 2:1")
	}
	if !errors.Is(err, ErrPrecondition) {
		t.Fatalf("error = %v, want ErrPrecondition", err)
	}
}

func TestAssetIsImage(t *testing.T) {
	if !NewAsset("a.png", "image/png", []byte{1}).IsImage() {
		t.Fatalf("image/png not recognized as image")
	}
	if NewAsset("a.txt", "text/plain", []byte{1}).IsImage() {
		t.Fatalf("text/plain recognized as image")
	}
}
