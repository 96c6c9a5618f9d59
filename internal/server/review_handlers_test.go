package server

import (
	"fmt"
	"net/http"
	"testing"

	"cineverse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewLifecycle(t *testing.T) {
	srv, app, db := newTestServer(t)
	author := seedUser(t, db, models.RoleUser)
	reviewer := seedUser(t, db, models.RoleUser)
	post := seedPublishedPost(t, db, author, "Reviewed")
	reviewsPath := fmt.Sprintf("/api/posts/%d/reviews", post.ID)
	token := tokenFor(t, srv, reviewer)

	status, root := doJSON(t, app, http.MethodPost, reviewsPath, token, map[string]any{
		"comment": "slow burn, worth it",
		"rating":  8,
	})
	require.Equal(t, http.StatusCreated, status)
	rootID := uint(root["id"].(float64))
	assert.EqualValues(t, 8, root["rating"])

	status, reply := doJSON(t, app, http.MethodPost, reviewsPath, token, map[string]any{
		"comment":   "agreed",
		"rating":    5,
		"parent_id": rootID,
	})
	require.Equal(t, http.StatusCreated, status)
	assert.EqualValues(t, 0, reply["rating"], "replies never carry a rating")

	status, tree := doJSON(t, app, http.MethodGet, reviewsPath, "", nil)
	require.Equal(t, http.StatusOK, status)
	items := tree["items"].([]any)
	require.Len(t, items, 1)
	replies := items[0].(map[string]any)["replies"].([]any)
	require.Len(t, replies, 1)
	assert.Equal(t, "agreed", replies[0].(map[string]any)["comment"])

	t.Run("stranger cannot delete", func(t *testing.T) {
		stranger := seedUser(t, db, models.RoleUser)
		status, _ := doJSON(t, app, http.MethodDelete,
			fmt.Sprintf("/api/reviews/%d", rootID), tokenFor(t, srv, stranger), nil)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("author delete removes the whole subtree", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodDelete,
			fmt.Sprintf("/api/reviews/%d", rootID), token, nil)
		require.Equal(t, http.StatusNoContent, status)

		var count int64
		require.NoError(t, db.Model(&models.Review{}).Where("post_id = ?", post.ID).Count(&count).Error)
		assert.Zero(t, count)
	})
}

func TestGetReviews_FollowsPostVisibility(t *testing.T) {
	srv, app, db := newTestServer(t)
	author := seedUser(t, db, models.RoleUser)
	post := seedPublishedPost(t, db, author, "Moderation queue")
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", post.ID).
		Update("status", models.PostStatusPendingApproval).Error)
	require.NoError(t, db.Create(&models.Review{
		Comment: "early note", PostID: post.ID, UserID: author.ID,
	}).Error)
	path := fmt.Sprintf("/api/posts/%d/reviews", post.ID)

	status, _ := doJSON(t, app, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, status, "unpublished post must not expose its reviews")

	stranger := seedUser(t, db, models.RoleUser)
	status, _ = doJSON(t, app, http.MethodGet, path, tokenFor(t, srv, stranger), nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, tree := doJSON(t, app, http.MethodGet, path, tokenFor(t, srv, author), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, tree["items"].([]any), 1)
}

func TestCreateReview_RequiresAuthAndComment(t *testing.T) {
	srv, app, db := newTestServer(t)
	author := seedUser(t, db, models.RoleUser)
	post := seedPublishedPost(t, db, author, "Quiet")
	path := fmt.Sprintf("/api/posts/%d/reviews", post.ID)

	status, _ := doJSON(t, app, http.MethodPost, path, "", map[string]any{"comment": "x"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, app, http.MethodPost, path, tokenFor(t, srv, author), map[string]any{"comment": "  "})
	assert.Equal(t, http.StatusBadRequest, status)
}
