package usecases_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gisteam.backend/internal/domain/entities"
	domainerrors "gisteam.backend/internal/domain/errors"
	"gisteam.backend/internal/usecases"
)

func TestTeamMemberReconciler_KeepsMostRecentlyUpdated(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(0)

	var xs []*entities.TeamMember
	for i := 0; i < 3; i++ {
		m := &entities.TeamMember{Name: "X", Title: "v"}
		require.NoError(t, repos.members.Create(ctx, m))
		xs = append(xs, m)
	}
	other := &entities.TeamMember{Name: "Y"}
	require.NoError(t, repos.members.Create(ctx, other))
	require.True(t, xs[0].UpdatedAt.Before(xs[1].UpdatedAt))
	require.True(t, xs[1].UpdatedAt.Before(xs[2].UpdatedAt))

	report, err := usecases.NewTeamMemberReconciler(repos.members).Run(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Scanned)
	require.Len(t, report.Groups, 1)
	assert.Equal(t, "X", report.Groups[0].Key)
	assert.Equal(t, xs[2].ID, report.Groups[0].RetainedID)
	assert.ElementsMatch(t, []uuid.UUID{xs[0].ID, xs[1].ID}, report.Groups[0].DeletedIDs)

	for _, gone := range xs[:2] {
		_, err := repos.members.GetByID(ctx, gone.ID)
		assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	}
	kept, err := repos.members.GetByID(ctx, xs[2].ID)
	require.NoError(t, err)
	assert.Equal(t, xs[2].UpdatedAt, kept.UpdatedAt)

	again, err := usecases.NewTeamMemberReconciler(repos.members).Run(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, again.Groups)
	assert.Equal(t, 2, again.Scanned)
}

func TestTeamMemberReconciler_UpdateDecidesTheSurvivor(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(0)

	first := &entities.TeamMember{Name: "Austin"}
	second := &entities.TeamMember{Name: "Austin"}
	require.NoError(t, repos.members.Create(ctx, first))
	require.NoError(t, repos.members.Create(ctx, second))
	_, err := repos.members.Update(ctx, first.ID, entities.TeamMemberPatch{Description: entities.Some("edited")})
	require.NoError(t, err)

	report, err := usecases.NewTeamMemberReconciler(repos.members).Run(ctx, false)
	require.NoError(t, err)
	require.Len(t, report.Groups, 1)
	assert.Equal(t, first.ID, report.Groups[0].RetainedID)
}

func TestReconciler_FailedDeletionDoesNotStopThePass(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mk := func(name string, offset time.Duration) *entities.TeamMember {
		return &entities.TeamMember{ID: uuid.New(), Name: name, UpdatedAt: base.Add(offset)}
	}
	a1, a2, a3 := mk("A", 3*time.Hour), mk("A", 2*time.Hour), mk("A", time.Hour)
	b1, b2 := mk("B", 2*time.Hour), mk("B", time.Hour)

	repo := new(MockTeamMemberRepository)
	repo.On("List", mock.Anything).Return([]*entities.TeamMember{a3, b2, a1, b1, a2}, nil)
	repo.On("Purge", mock.Anything, a2.ID).Return(false, domainerrors.Transient("delete", errors.New("timeout")))
	repo.On("Purge", mock.Anything, a3.ID).Return(true, nil)
	repo.On("Purge", mock.Anything, b2.ID).Return(true, nil)

	report, err := usecases.NewTeamMemberReconciler(repo).Run(ctx, false)
	require.NoError(t, err)
	require.Len(t, report.Groups, 2)

	assert.Equal(t, a1.ID, report.Groups[0].RetainedID)
	assert.Equal(t, []uuid.UUID{a3.ID}, report.Groups[0].DeletedIDs)
	require.Len(t, report.Groups[0].Failed, 1)
	assert.Equal(t, a2.ID, report.Groups[0].Failed[0].ID)

	assert.Equal(t, b1.ID, report.Groups[1].RetainedID)
	assert.Equal(t, []uuid.UUID{b2.ID}, report.Groups[1].DeletedIDs)
	assert.Equal(t, 2, report.DeletedCount())
	assert.Equal(t, 1, report.FailedCount())
	repo.AssertExpectations(t)
}

func TestReconciler_AlreadyGoneIsNotCountedAsDeleted(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	keep := &entities.TeamMember{ID: uuid.New(), Name: "X", UpdatedAt: base.Add(time.Hour)}
	gone := &entities.TeamMember{ID: uuid.New(), Name: "X", UpdatedAt: base}

	repo := new(MockTeamMemberRepository)
	repo.On("List", mock.Anything).Return([]*entities.TeamMember{gone, keep}, nil)
	repo.On("Purge", mock.Anything, gone.ID).Return(false, nil)

	report, err := usecases.NewTeamMemberReconciler(repo).Run(ctx, false)
	require.NoError(t, err)
	require.Len(t, report.Groups, 1)
	assert.Equal(t, keep.ID, report.Groups[0].RetainedID)
	assert.Empty(t, report.Groups[0].DeletedIDs)
	assert.Equal(t, []uuid.UUID{gone.ID}, report.Groups[0].AbsentIDs)
	assert.Equal(t, 0, report.DeletedCount())
	assert.Equal(t, 1, report.AbsentCount())
	assert.Equal(t, 0, report.FailedCount())
	repo.AssertExpectations(t)
}

func TestReconciler_EmptyKeys(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(0)

	for i := 0; i < 2; i++ {
		require.NoError(t, repos.members.Create(ctx, &entities.TeamMember{}))
		require.NoError(t, repos.accounts.Create(ctx, &entities.Account{Username: fmt.Sprintf("legacy%d", i)}))
	}

	members, err := usecases.NewTeamMemberReconciler(repos.members).Run(ctx, false)
	require.NoError(t, err)
	require.Len(t, members.Groups, 1)
	assert.Equal(t, "", members.Groups[0].Key)
	assert.Equal(t, 1, members.DeletedCount())

	accounts, err := usecases.NewAccountReconciler(repos.accounts, "email").Run(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, accounts.Groups, "accounts without an email are distinct")

	left, err := repos.accounts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, left, 2)
}

func TestReconciler_ConvergesOverCopiedDocument(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(0)

	first := &entities.TeamMember{Name: "X"}
	second := &entities.TeamMember{Name: "X"}
	require.NoError(t, repos.members.Create(ctx, first))
	require.NoError(t, repos.members.Create(ctx, second))
	body, _, err := repos.store.Get(ctx, "team-members/"+first.ID.String())
	require.NoError(t, err)
	require.NoError(t, repos.store.Put(ctx, "team-members/"+uuid.NewString(), body))

	reconciler := usecases.NewTeamMemberReconciler(repos.members)
	report, err := reconciler.Run(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, report.DeletedCount())

	again, err := reconciler.Run(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, again.Groups)
	assert.Equal(t, 1, again.Scanned)
}

func TestReconciler_ListFailure(t *testing.T) {
	repo := new(MockTeamMemberRepository)
	repo.On("List", mock.Anything).Return(nil, domainerrors.Transient("list", errors.New("down")))

	_, err := usecases.NewTeamMemberReconciler(repo).Run(context.Background(), false)
	assert.True(t, domainerrors.IsTransient(err))
}

func TestReconciler_DryRunDeletesNothing(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(0)
	for i := 0; i < 2; i++ {
		require.NoError(t, repos.members.Create(ctx, &entities.TeamMember{Name: "Dup"}))
	}

	report, err := usecases.NewTeamMemberReconciler(repos.members).Run(ctx, true)
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, 1, report.DeletedCount())

	members, err := repos.members.List(ctx)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestReconcileUsecase_AccountsByUsernameThenEmail(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(0)

	for _, a := range []*entities.Account{
		{Username: "ana", Email: "ana@x.org"},
		{Username: "ana", Email: "ana2@x.org"},
		{Username: "bob", Email: "shared@x.org"},
		{Username: "bobby", Email: "shared@x.org"},
	} {
		require.NoError(t, repos.accounts.Create(ctx, a))
	}

	reports, err := usecases.NewDefaultReconcileUsecase(repos.members, repos.accounts).RunAll(ctx, false)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, "team_member", reports[0].Entity)
	assert.Equal(t, "username", reports[1].KeyName)
	assert.Equal(t, 1, reports[1].DeletedCount())
	assert.Equal(t, "email", reports[2].KeyName)
	assert.Equal(t, 1, reports[2].DeletedCount())

	accounts, err := repos.accounts.List(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "ana2@x.org", accounts[0].Email, "newest ana survives")
	assert.Equal(t, "bobby", accounts[1].Username, "newest holder of the email survives")
}
