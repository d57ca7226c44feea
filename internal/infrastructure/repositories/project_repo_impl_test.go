package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"gisteam.backend/internal/domain/entities"
	domainerrors "gisteam.backend/internal/domain/errors"
	"gisteam.backend/internal/infrastructure/objectstore"
)

func TestProjectRepository_CRUDAndLists(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(objectstore.NewMemoryStore(0), testOptions(newTestClock(time.Hour)))
	owner := uuid.New()

	older := &entities.Project{
		Title:       "Trail map",
		CreatorName: "Ana",
		Description: "Hiking trails",
		ProjectLink: "https://arcg.is/abc",
		ProjectType: "story map",
		Tags:        "trails, parks",
		ImageURL:    "https://storage.googleapis.com/b/trail.png",
		CreatedBy:   null.StringFrom(owner.String()),
	}
	newer := &entities.Project{Title: "Flood risk", CreatorName: "Ben"}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))
	assert.True(t, older.IsActive)

	got, err := repo.GetByID(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, older, got)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID, "newest first")

	deactivated, err := repo.Deactivate(ctx, newer.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, older.ID, list[0].ID)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	existed, err := repo.Purge(ctx, newer.ID)
	require.NoError(t, err)
	assert.True(t, existed)
	_, err = repo.GetByID(ctx, newer.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestProjectRepository_UpdateMergesSuppliedFields(t *testing.T) {
	ctx := context.Background()
	repo := NewProjectRepository(objectstore.NewMemoryStore(0), testOptions(newTestClock(time.Second)))

	p := &entities.Project{Title: "A", Description: "keep", Tags: "x"}
	require.NoError(t, repo.Create(ctx, p))

	updated, err := repo.Update(ctx, p.ID, entities.ProjectPatch{Title: entities.Some("B"), Tags: entities.Some("")})
	require.NoError(t, err)
	assert.Equal(t, "B", updated.Title)
	assert.Equal(t, "keep", updated.Description)
	assert.Equal(t, "", updated.Tags)
	assert.True(t, updated.IsActive)
}

func TestGalleryRepository_CRUDAndLists(t *testing.T) {
	ctx := context.Background()
	repo := NewGalleryRepository(objectstore.NewMemoryStore(0), testOptions(newTestClock(time.Hour)))

	first := &entities.GalleryItem{Title: "Field day", ImageURL: "/static/uploads/a.jpg"}
	second := &entities.GalleryItem{Title: "Awards", Description: "2024 ceremony"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "/static/uploads/a.jpg", got.ImageURL)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)

	updated, err := repo.Update(ctx, first.ID, entities.GalleryItemPatch{Description: entities.Some("Summer")})
	require.NoError(t, err)
	assert.Equal(t, "Summer", updated.Description)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	_, err = repo.Deactivate(ctx, second.ID)
	require.NoError(t, err)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, first.ID, items[0].ID)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)

	_, err = repo.Deactivate(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestGalleryRepository_LegacyDocumentWithoutUpdatedAt(t *testing.T) {
	ctx := context.Background()
	store := objectstore.NewMemoryStore(0)
	repo := NewGalleryRepository(store, testOptions(newTestClock(time.Second)))
	id := uuid.New()
	require.NoError(t, store.Put(ctx, "gallery/"+id.String(), []byte(`{
		"id": "`+id.String()+`",
		"title": "Old",
		"description": "",
		"image_url": "/static/uploads/old.jpg",
		"created_at": "2023-05-01T10:00:00.000001",
		"created_by": null
	}`)))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
	assert.False(t, got.CreatedBy.Valid)
}
