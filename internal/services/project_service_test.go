package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akshay-h-dev/milestack/internal/models"
	apperrors "github.com/akshay-h-dev/milestack/pkg/errors"
)

func TestCreateProjectMakesCreatorLeader(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()

	project, err := fx.projects.Create(ctx, "user-00000001", "Apollo", "moon shot")
	require.NoError(t, err)

	require.Regexp(t, `^proj-[0-9a-f]{8}$`, project.ID)
	require.Equal(t, "running", project.Status)
	require.Equal(t, []string{"user-00000001"}, []string(project.Members))

	leader, err := fx.members.IsLeader(ctx, project.ID, "user-00000001")
	require.NoError(t, err)
	require.True(t, leader)

	feed, err := fx.acts.ListForProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	require.Equal(t, "created the project", feed[0].Description)
}

func TestListForUserFiltersByMembership(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()

	mine, err := fx.projects.Create(ctx, "user-00000001", "Apollo", "")
	require.NoError(t, err)
	_, err = fx.projects.Create(ctx, "user-00000002", "Gemini", "")
	require.NoError(t, err)

	visible, err := fx.projects.ListForUser(ctx, "user-00000001")
	require.NoError(t, err)
	require.Len(t, visible, 1)
	require.Equal(t, mine.ID, visible[0].ID)

	none, err := fx.projects.ListForUser(ctx, "user-00000099")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestUpdateProjectAppliesWhitelistOnly(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()

	project, err := fx.projects.Create(ctx, "user-00000001", "Apollo", "")
	require.NoError(t, err)

	status := "paused"
	updated, err := fx.projects.Update(ctx, project.ID, "user-00000001", ProjectPatch{Status: &status})
	require.NoError(t, err)
	require.Equal(t, "paused", updated.Status)
	require.Equal(t, "Apollo", updated.Title)

	feed, err := fx.acts.ListForProject(ctx, project.ID)
	require.NoError(t, err)
	require.Equal(t, "updated the project: Apollo", feed[0].Description)
}

func TestDeleteProjectRequiresLeader(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()

	project, err := fx.projects.Create(ctx, "user-00000001", "Apollo", "")
	require.NoError(t, err)
	_, err = fx.members.AddMember(ctx, project.ID, "user-00000002", models.RoleMember)
	require.NoError(t, err)

	err = fx.projects.Delete(ctx, project.ID, "user-00000002")
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	err = fx.projects.Delete(ctx, project.ID, "user-00000001")
	require.NoError(t, err)

	_, err = fx.projects.Get(ctx, project.ID)
	require.ErrorIs(t, err, ErrProjectNotFound)

	// The feed keeps the trail even after the project row is gone.
	feed, err := fx.acts.ListForProject(ctx, project.ID)
	require.NoError(t, err)
	require.Equal(t, "deleted the project: Apollo", feed[0].Description)
}
