package usecases_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gisteam.backend/internal/domain/entities"
	domainerrors "gisteam.backend/internal/domain/errors"
	"gisteam.backend/internal/usecases"
)

const seedYAML = `
team_members:
  - name: Thomas Tate
    title: Founder
    description: Retired National Program Leader.
    member_type: board
  - name: Geovanny Solera
    title: Now at Esri
    member_type: alumni
    year: Field Mapping Lead, 2009
projects:
  - title: County Parks Story Map
    creator_name: Youth Team
    project_type: story map
    tags: parks, trails
gallery:
  - title: National Conference
    image_url: /static/uploads/conference.jpg
`

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))

	seed, err := usecases.LoadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, seed.TeamMembers, 2)
	assert.Equal(t, "Field Mapping Lead, 2009", seed.TeamMembers[1].Year)
	require.Len(t, seed.Projects, 1)
	require.Len(t, seed.Gallery, 1)

	_, err = usecases.LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseSeed_Invalid(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown key":      "team_members:\n  - name: A\n    role: x\n",
		"missing name":     "team_members:\n  - title: A\n",
		"bad member type":  "team_members:\n  - name: A\n    member_type: staff\n",
		"missing title":    "projects:\n  - creator_name: A\n",
		"gallery no title": "gallery:\n  - image_url: x\n",
		"not yaml":         "team_members: [",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := usecases.ParseSeed([]byte(doc))
			assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
		})
	}

	seed, err := usecases.ParseSeed(nil)
	require.NoError(t, err)
	assert.Empty(t, seed.TeamMembers)
}

func TestSeedUsecase_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(2)
	u := usecases.NewSeedUsecase(repos.members, repos.projects, repos.gallery)

	seed, err := usecases.ParseSeed([]byte(seedYAML))
	require.NoError(t, err)

	first, err := u.Apply(ctx, seed)
	require.NoError(t, err)
	assert.Equal(t, usecases.SeedCounts{Created: 2}, first.TeamMembers)
	assert.Equal(t, usecases.SeedCounts{Created: 1}, first.Projects)
	assert.Equal(t, usecases.SeedCounts{Created: 1}, first.Gallery)

	second, err := u.Apply(ctx, seed)
	require.NoError(t, err)
	assert.Equal(t, usecases.SeedCounts{Skipped: 2}, second.TeamMembers)
	assert.Equal(t, usecases.SeedCounts{Skipped: 1}, second.Projects)
	assert.Equal(t, usecases.SeedCounts{Skipped: 1}, second.Gallery)

	members, err := repos.members.List(ctx)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Thomas Tate", members[0].Name)
	assert.Equal(t, entities.MemberTypeAlumni, members[1].MemberType)
	assert.False(t, members[0].LinkedInURL.Valid)
}

func TestSeedUsecase_DuplicateNamesInOneFile(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(0)
	u := usecases.NewSeedUsecase(repos.members, repos.projects, repos.gallery)

	report, err := u.Apply(ctx, &usecases.SeedFile{TeamMembers: []usecases.SeedTeamMember{{Name: "A"}, {Name: "A"}}})
	require.NoError(t, err)
	assert.Equal(t, usecases.SeedCounts{Created: 1, Skipped: 1}, report.TeamMembers)
}
