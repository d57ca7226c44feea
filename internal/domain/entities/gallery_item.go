package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// GalleryItem is a captioned image. ImageURL is stored verbatim.
type GalleryItem struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	ImageURL    string      `json:"image_url"`
	CreatedBy   null.String `json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	IsActive    bool        `json:"is_active"`
}

type GalleryItemPatch struct {
	Title       Optional[string]
	Description Optional[string]
	ImageURL    Optional[string]
	IsActive    Optional[bool]
}

func (p GalleryItemPatch) Apply(g *GalleryItem) bool {
	changed := p.Title.Apply(&g.Title)
	changed = p.Description.Apply(&g.Description) || changed
	changed = p.ImageURL.Apply(&g.ImageURL) || changed
	changed = p.IsActive.Apply(&g.IsActive) || changed
	return changed
}
