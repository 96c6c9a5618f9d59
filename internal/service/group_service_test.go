package service

import (
	"context"
	"testing"

	"cineverse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGroupService() (*GroupService, *stubGroupRepo) {
	repo := &stubGroupRepo{
		groups: map[uint]*models.Group{
			1: {ID: 1, Name: "Open", Slug: "open", Status: models.GroupStatusActive},
			2: {ID: 2, Name: "Closed", Slug: "closed", Status: models.GroupStatusBanned},
		},
		memberOf: map[uint][]uint{},
	}
	return NewGroupService(repo), repo
}

func TestJoinGroup(t *testing.T) {
	svc, repo := newGroupService()
	ctx := context.Background()

	t.Run("anonymous rejected", func(t *testing.T) {
		err := svc.JoinGroup(ctx, 0, "open")
		assert.True(t, models.IsCode(err, models.CodeNotAuthenticated))
	})

	t.Run("banned group rejects members", func(t *testing.T) {
		err := svc.JoinGroup(ctx, 7, "closed")
		assert.True(t, models.IsCode(err, models.CodeNotAuthorized))
	})

	t.Run("active group accepts", func(t *testing.T) {
		require.NoError(t, svc.JoinGroup(ctx, 7, "open"))
		assert.Contains(t, repo.memberOf[7], uint(1))
	})
}

func TestLeaveGroup_RequiresMembership(t *testing.T) {
	svc, repo := newGroupService()
	ctx := context.Background()

	err := svc.LeaveGroup(ctx, 7, "open")
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	repo.memberOf[7] = []uint{1}
	assert.NoError(t, svc.LeaveGroup(ctx, 7, "open"))
}

func TestGetGroup_NormalizesSlug(t *testing.T) {
	svc, _ := newGroupService()

	group, err := svc.GetGroup(context.Background(), "  Open ")
	require.NoError(t, err)
	assert.EqualValues(t, 1, group.ID)

	_, err = svc.GetGroup(context.Background(), "missing")
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}
