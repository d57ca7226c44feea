package usecases

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"gisteam.backend/internal/domain/entities"
	domainerrors "gisteam.backend/internal/domain/errors"
	"gisteam.backend/internal/domain/repositories"
	"gisteam.backend/pkg/logger"
)

// SeedFile is the YAML layout accepted by LoadSeedFile.
type SeedFile struct {
	TeamMembers []SeedTeamMember  `yaml:"team_members"`
	Projects    []SeedProject     `yaml:"projects"`
	Gallery     []SeedGalleryItem `yaml:"gallery"`
}

type SeedTeamMember struct {
	Name        string `yaml:"name"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	LinkedInURL string `yaml:"linkedin_url"`
	MemberType  string `yaml:"member_type"`
	Year        string `yaml:"year"`
}

type SeedProject struct {
	Title       string `yaml:"title"`
	CreatorName string `yaml:"creator_name"`
	Description string `yaml:"description"`
	ProjectLink string `yaml:"project_link"`
	ProjectType string `yaml:"project_type"`
	Tags        string `yaml:"tags"`
	ImageURL    string `yaml:"image_url"`
}

type SeedGalleryItem struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	ImageURL    string `yaml:"image_url"`
}

// LoadSeedFile reads and validates a seed file.
func LoadSeedFile(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes seed YAML. Unknown keys are rejected so typos surface.
func ParseSeed(data []byte) (*SeedFile, error) {
	var seed SeedFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: seed file: %v", domainerrors.ErrInvalidInput, err)
	}
	for i, m := range seed.TeamMembers {
		if m.Name == "" {
			return nil, fmt.Errorf("%w: team_members[%d] has no name", domainerrors.ErrInvalidInput, i)
		}
		if m.MemberType != "" && !entities.MemberType(m.MemberType).Valid() {
			return nil, fmt.Errorf("%w: team_members[%d] has member_type %q", domainerrors.ErrInvalidInput, i, m.MemberType)
		}
	}
	for i, p := range seed.Projects {
		if p.Title == "" {
			return nil, fmt.Errorf("%w: projects[%d] has no title", domainerrors.ErrInvalidInput, i)
		}
	}
	for i, g := range seed.Gallery {
		if g.Title == "" {
			return nil, fmt.Errorf("%w: gallery[%d] has no title", domainerrors.ErrInvalidInput, i)
		}
	}
	return &seed, nil
}

// SeedCounts is the outcome for one collection.
type SeedCounts struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

type SeedReport struct {
	TeamMembers SeedCounts `json:"team_members"`
	Projects    SeedCounts `json:"projects"`
	Gallery     SeedCounts `json:"gallery"`
}

// SeedUsecase creates records from a seed file. Records whose natural key
// (name or title) is already stored are skipped, so re-running a seed does
// not create duplicates as long as earlier writes have become listable.
type SeedUsecase struct {
	members  repositories.TeamMemberRepository
	projects repositories.ProjectRepository
	gallery  repositories.GalleryRepository
}

func NewSeedUsecase(members repositories.TeamMemberRepository, projects repositories.ProjectRepository, gallery repositories.GalleryRepository) *SeedUsecase {
	return &SeedUsecase{members: members, projects: projects, gallery: gallery}
}

func (u *SeedUsecase) Apply(ctx context.Context, seed *SeedFile) (*SeedReport, error) {
	report := &SeedReport{}
	var err error
	if report.TeamMembers, err = u.seedTeamMembers(ctx, seed.TeamMembers); err != nil {
		return report, err
	}
	if report.Projects, err = u.seedProjects(ctx, seed.Projects); err != nil {
		return report, err
	}
	if report.Gallery, err = u.seedGallery(ctx, seed.Gallery); err != nil {
		return report, err
	}
	logger.Info(ctx, "Seed applied",
		zap.Int("team_members_created", report.TeamMembers.Created),
		zap.Int("projects_created", report.Projects.Created),
		zap.Int("gallery_created", report.Gallery.Created),
	)
	return report, nil
}

func (u *SeedUsecase) seedTeamMembers(ctx context.Context, items []SeedTeamMember) (SeedCounts, error) {
	var counts SeedCounts
	if len(items) == 0 {
		return counts, nil
	}
	existing, err := u.members.List(ctx)
	if err != nil {
		return counts, err
	}
	seen := make(map[string]bool, len(existing))
	for _, m := range existing {
		seen[m.Name] = true
	}

	for _, item := range items {
		if seen[item.Name] {
			counts.Skipped++
			continue
		}
		m := &entities.TeamMember{
			Name:        item.Name,
			Title:       item.Title,
			Description: item.Description,
			LinkedInURL: optionalString(item.LinkedInURL),
			MemberType:  entities.MemberType(item.MemberType),
			Year:        optionalString(item.Year),
		}
		if err := u.members.Create(ctx, m); err != nil {
			return counts, err
		}
		awaitListed(ctx, u.members, m.ID)
		seen[item.Name] = true
		counts.Created++
	}
	return counts, nil
}

func (u *SeedUsecase) seedProjects(ctx context.Context, items []SeedProject) (SeedCounts, error) {
	var counts SeedCounts
	if len(items) == 0 {
		return counts, nil
	}
	existing, err := u.projects.ListAll(ctx)
	if err != nil {
		return counts, err
	}
	seen := make(map[string]bool, len(existing))
	for _, p := range existing {
		seen[p.Title] = true
	}

	for _, item := range items {
		if seen[item.Title] {
			counts.Skipped++
			continue
		}
		p := &entities.Project{
			Title:       item.Title,
			CreatorName: item.CreatorName,
			Description: item.Description,
			ProjectLink: item.ProjectLink,
			ProjectType: item.ProjectType,
			Tags:        item.Tags,
			ImageURL:    item.ImageURL,
		}
		if err := u.projects.Create(ctx, p); err != nil {
			return counts, err
		}
		awaitListed(ctx, u.projects, p.ID)
		seen[item.Title] = true
		counts.Created++
	}
	return counts, nil
}

func (u *SeedUsecase) seedGallery(ctx context.Context, items []SeedGalleryItem) (SeedCounts, error) {
	var counts SeedCounts
	if len(items) == 0 {
		return counts, nil
	}
	existing, err := u.gallery.ListAll(ctx)
	if err != nil {
		return counts, err
	}
	seen := make(map[string]bool, len(existing))
	for _, g := range existing {
		seen[g.Title] = true
	}

	for _, item := range items {
		if seen[item.Title] {
			counts.Skipped++
			continue
		}
		g := &entities.GalleryItem{
			Title:       item.Title,
			Description: item.Description,
			ImageURL:    item.ImageURL,
		}
		if err := u.gallery.Create(ctx, g); err != nil {
			return counts, err
		}
		awaitListed(ctx, u.gallery, g.ID)
		seen[item.Title] = true
		counts.Created++
	}
	return counts, nil
}

// awaitListed waits for the new record to become listable so the next
// natural-key check sees it. A timeout is logged and seeding continues.
func awaitListed(ctx context.Context, repo any, id uuid.UUID) {
	a, ok := repo.(repositories.ListAwaiter)
	if !ok {
		return
	}
	if err := a.AwaitListed(ctx, id); err != nil {
		logger.Warn(ctx, "Seeded record not yet listed", zap.String("id", id.String()), zap.Error(err))
	}
}
