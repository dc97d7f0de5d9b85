package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultMasterPrompt is stored when the synthesis response carried no text part.
const DefaultMasterPrompt = "New Poster - Master prompt not generated."

const displayNameRunes = 30

// PosterRecord is one entry of the revision library. Records are immutable
// once created; edits always produce a new record with a fresh id so the
// history stays append-only.
type PosterRecord struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	MIME      string            `json:"mime"`
	Image     []byte            `json:"-"`
	Prompt    string            `json:"prompt"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewPosterRecord mints a record for a freshly generated image. The display
// name is the truncated master prompt, falling back to a generic label.
func NewPosterRecord(mime string, image []byte, prompt string, metadata map[string]string) PosterRecord {
	return PosterRecord{
		ID:        "poster-" + uuid.NewString(),
		Name:      DeriveName(prompt),
		MIME:      mime,
		Image:     image,
		Prompt:    prompt,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	}
}

// DeriveName truncates a master prompt into a library display name.
func DeriveName(prompt string) string {
	runes := []rune(prompt)
	if len(runes) > displayNameRunes {
		runes = runes[:displayNameRunes]
	}
	if name := string(runes); name != "" {
		return name
	}
	return "New Poster"
}
