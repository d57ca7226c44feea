package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Project is a showcased project. IsActive supports logical deletion.
type Project struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	CreatorName string      `json:"creator_name"`
	Description string      `json:"description"`
	ProjectLink string      `json:"project_link"`
	ProjectType string      `json:"project_type"`
	Tags        string      `json:"tags"`
	ImageURL    string      `json:"image_url"`
	CreatedBy   null.String `json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	IsActive    bool        `json:"is_active"`
}

type ProjectPatch struct {
	Title       Optional[string]
	CreatorName Optional[string]
	Description Optional[string]
	ProjectLink Optional[string]
	ProjectType Optional[string]
	Tags        Optional[string]
	ImageURL    Optional[string]
	IsActive    Optional[bool]
}

func (p ProjectPatch) Apply(pr *Project) bool {
	changed := p.Title.Apply(&pr.Title)
	changed = p.CreatorName.Apply(&pr.CreatorName) || changed
	changed = p.Description.Apply(&pr.Description) || changed
	changed = p.ProjectLink.Apply(&pr.ProjectLink) || changed
	changed = p.ProjectType.Apply(&pr.ProjectType) || changed
	changed = p.Tags.Apply(&pr.Tags) || changed
	changed = p.ImageURL.Apply(&pr.ImageURL) || changed
	changed = p.IsActive.Apply(&pr.IsActive) || changed
	return changed
}
