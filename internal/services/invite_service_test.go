package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/akshay-h-dev/milestack/internal/database/testutil"
	"github.com/akshay-h-dev/milestack/internal/models"
)

func newInviteFixture(t *testing.T) (*gorm.DB, *InviteService, *MembershipService, *ActivityService) {
	t.Helper()
	db := testutil.MustOpenTestDB(t)

	members, err := NewMembershipService(db)
	require.NoError(t, err)
	acts, err := NewActivityService(db)
	require.NoError(t, err)
	invites, err := NewInviteService(db, members, acts)
	require.NoError(t, err)

	return db, invites, members, acts
}

func TestCreateInviteIsPending(t *testing.T) {
	_, invites, _, _ := newInviteFixture(t)

	invite, err := invites.Create(context.Background(), "proj-00000001", " alice@x.com ", "Alice")
	require.NoError(t, err)
	require.Regexp(t, `^invite-[0-9a-f]{8}$`, invite.ID)
	require.Equal(t, "alice@x.com", invite.Email)
	require.Equal(t, models.InviteStatusPending, invite.Status)
	require.False(t, invite.CreatedAt.IsZero())
}

func TestListFiltersPendingByProject(t *testing.T) {
	db, invites, _, _ := newInviteFixture(t)
	ctx := context.Background()

	_, err := invites.Create(ctx, "proj-00000001", "alice@x.com", "Alice")
	require.NoError(t, err)
	_, err = invites.Create(ctx, "proj-00000002", "bob@x.com", "Bob")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Invite{
		ProjectID: "proj-00000001",
		Email:     "carol@x.com",
		Status:    models.InviteStatusAccepted,
	}).Error)

	scoped, err := invites.List(ctx, "proj-00000001")
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	require.Equal(t, "alice@x.com", scoped[0].Email)

	all, err := invites.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestConsumeForEmailFansOutAcrossInvites(t *testing.T) {
	db, invites, members, acts := newInviteFixture(t)
	ctx := context.Background()

	_, err := invites.Create(ctx, "proj-00000001", "alice@x.com", "Alice")
	require.NoError(t, err)
	_, err = invites.Create(ctx, "proj-00000002", "alice@x.com", "Alice")
	require.NoError(t, err)
	_, err = invites.Create(ctx, "proj-00000003", "someone-else@x.com", "Zed")
	require.NoError(t, err)

	require.NoError(t, invites.ConsumeForEmail(ctx, "alice@x.com", "user-00000001"))

	for _, projectID := range []string{"proj-00000001", "proj-00000002"} {
		member, err := members.IsMember(ctx, projectID, "user-00000001")
		require.NoError(t, err)
		require.True(t, member, "expected membership in %s", projectID)

		feed, err := acts.ListForProject(ctx, projectID)
		require.NoError(t, err)
		require.Len(t, feed, 1)
		require.Equal(t, "joined the project", feed[0].Description)
	}

	var remaining int64
	require.NoError(t, db.Model(&models.Invite{}).Count(&remaining).Error)
	require.EqualValues(t, 1, remaining) // the unrelated invite survives
}

func TestGetReturnsNotFoundForUnknownID(t *testing.T) {
	_, invites, _, _ := newInviteFixture(t)

	_, err := invites.Get(context.Background(), "invite-ffffffff")
	require.ErrorIs(t, err, ErrInviteNotFound)
}
