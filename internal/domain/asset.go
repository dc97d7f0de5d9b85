package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Asset is an uploaded source image held in memory for the session. Product
// assets form an ordered list (order is significant, duplicates allowed);
// at most one style asset exists at a time.
type Asset struct {
	ID   string
	Name string
	MIME string
	Data []byte
}

// NewAsset wraps raw upload bytes into an Asset with a fresh identity.
func NewAsset(name, mime string, data []byte) Asset {
	return Asset{
		ID:   uuid.NewString(),
		Name: strings.TrimSpace(name),
		MIME: mime,
		Data: data,
	}
}

// IsImage reports whether the asset carries an image MIME type.
func (a Asset) IsImage() bool {
	return strings.HasPrefix(a.MIME, "image/")
}
