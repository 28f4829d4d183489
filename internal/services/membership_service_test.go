package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/akshay-h-dev/milestack/internal/database/testutil"
	"github.com/akshay-h-dev/milestack/internal/models"
)

func seedUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, PasswordHash: "x", Status: models.UserStatusOnline}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func countMembers(t *testing.T, db *gorm.DB, projectID string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.ProjectMember{}).Where("project_id = ?", projectID).Count(&count).Error)
	return count
}

func TestAddMemberIsIdempotentPerPair(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewMembershipService(db)
	require.NoError(t, err)
	ctx := context.Background()

	first, err := svc.AddMember(ctx, "proj-00000001", "user-00000001", models.RoleMember)
	require.NoError(t, err)

	second, err := svc.AddMember(ctx, "proj-00000001", "user-00000001", models.RoleMember)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.EqualValues(t, 1, countMembers(t, db, "proj-00000001"))
}

func TestAddMemberNeverDowngradesLeader(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewMembershipService(db)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.AddMember(ctx, "proj-00000001", "user-00000001", models.RoleLeader)
	require.NoError(t, err)

	again, err := svc.AddMember(ctx, "proj-00000001", "user-00000001", models.RoleMember)
	require.NoError(t, err)
	require.Equal(t, models.RoleLeader, again.Role)

	leader, err := svc.IsLeader(ctx, "proj-00000001", "user-00000001")
	require.NoError(t, err)
	require.True(t, leader)
}

func TestAddMemberRefreshesNonLeaderRole(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewMembershipService(db)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.AddMember(ctx, "proj-00000001", "user-00000001", "member")
	require.NoError(t, err)

	refreshed, err := svc.AddMember(ctx, "proj-00000001", "user-00000001", "observer")
	require.NoError(t, err)
	require.Equal(t, "observer", refreshed.Role)
	require.EqualValues(t, 1, countMembers(t, db, "proj-00000001"))
}

func TestRemoveMemberPreservesLeader(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewMembershipService(db)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.AddMember(ctx, "proj-00000001", "user-00000001", models.RoleLeader)
	require.NoError(t, err)
	_, err = svc.AddMember(ctx, "proj-00000001", "user-00000002", models.RoleMember)
	require.NoError(t, err)

	// Removing the leader is a silent no-op.
	require.NoError(t, svc.RemoveMember(ctx, "proj-00000001", "user-00000001"))
	require.EqualValues(t, 2, countMembers(t, db, "proj-00000001"))

	// Removing a plain member works.
	require.NoError(t, svc.RemoveMember(ctx, "proj-00000001", "user-00000002"))
	require.EqualValues(t, 1, countMembers(t, db, "proj-00000001"))

	member, err := svc.IsMember(ctx, "proj-00000001", "user-00000002")
	require.NoError(t, err)
	require.False(t, member)
}

func TestTeammatesSortsLeaderFirst(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewMembershipService(db)
	require.NoError(t, err)
	ctx := context.Background()

	bob := seedUser(t, db, "Bob", "bob@x.com")
	alice := seedUser(t, db, "Alice", "alice@x.com")

	_, err = svc.AddMember(ctx, "proj-00000001", bob.ID, models.RoleMember)
	require.NoError(t, err)
	_, err = svc.AddMember(ctx, "proj-00000001", alice.ID, models.RoleLeader)
	require.NoError(t, err)

	teammates, err := svc.Teammates(ctx, "proj-00000001")
	require.NoError(t, err)
	require.Len(t, teammates, 2)
	require.Equal(t, "Alice", teammates[0].Name)
	require.Equal(t, models.RoleLeader, teammates[0].Role)
	require.Equal(t, "Bob", teammates[1].Name)
}

func TestTeammatesSkipsDanglingMemberships(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewMembershipService(db)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.AddMember(ctx, "proj-00000001", "user-gone", models.RoleMember)
	require.NoError(t, err)

	teammates, err := svc.Teammates(ctx, "proj-00000001")
	require.NoError(t, err)
	require.Empty(t, teammates)
}
